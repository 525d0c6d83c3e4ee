package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

func GenerateBookingRef() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("bkg_%d_%06d", timestamp, randomNum.Int64())
}

func GenerateRegistrationRef() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("reg_%d_%06d", timestamp, randomNum.Int64())
}

func GeneratePaymentRef() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999999))
	return fmt.Sprintf("pay_%d_%09d", timestamp, randomNum.Int64())
}
