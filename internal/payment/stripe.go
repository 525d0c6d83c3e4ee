package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/logger"
	"venue-booking/internal/models"
	"venue-booking/internal/utils"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

var (
	ErrStripeClientInitFailed = errors.New("failed to initialize Stripe client")
	ErrIntentCreationFailed   = errors.New("failed to create payment intent")
)

type Store interface {
	SavePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByBooking(ctx context.Context, bookingRef string) (*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, intentID, status string) error
}

// StripeService creates PaymentIntents for online bookings and records
// their lifecycle in the payment store.
type StripeService struct {
	client *client.API
	store  Store
	log    *logger.Logger
}

func NewStripeService(secretKey string, store Store, log *logger.Logger) (*StripeService, error) {
	if secretKey == "" {
		log.Error("STRIPE", "STRIPE_SECRET_KEY not set")
		return nil, ErrStripeClientInitFailed
	}

	sc := client.New(secretKey, nil)
	if sc == nil {
		log.Error("STRIPE", "Failed to initialize Stripe client")
		return nil, ErrStripeClientInitFailed
	}

	log.Info("STRIPE", "Stripe client initialized successfully")
	return &StripeService{client: sc, store: store, log: log}, nil
}

// CreateIntent opens a PaymentIntent for the booking amount in INR and
// stores a pending payment row. Amounts are rupees; Stripe wants paise.
func (s *StripeService) CreateIntent(ctx context.Context, bookingRef string, amount float64) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		Metadata: map[string]string{
			"booking_ref": bookingRef,
		},
	}

	intent, err := s.client.PaymentIntents.New(params)
	if err != nil {
		s.log.Error("STRIPE", fmt.Sprintf("PaymentIntent creation failed for %s: %v", bookingRef, err))
		return "", "", fmt.Errorf("%w: %v", ErrIntentCreationFailed, err)
	}

	payment := &models.Payment{
		ID:         utils.GeneratePaymentRef(),
		BookingRef: bookingRef,
		Amount:     amount,
		Currency:   "inr",
		Status:     "pending",
		IntentID:   intent.ID,
		CreatedAt:  time.Now(),
	}
	if err := s.store.SavePayment(ctx, payment); err != nil {
		s.log.Error("STRIPE", fmt.Sprintf("failed to store payment for %s: %v", bookingRef, err))
		return "", "", err
	}

	s.log.Info("STRIPE", fmt.Sprintf("PaymentIntent %s created for booking %s (₹%.2f)", intent.ID, bookingRef, amount))
	return intent.ID, intent.ClientSecret, nil
}

// ConfirmIntent records a successful payment against its intent.
func (s *StripeService) ConfirmIntent(ctx context.Context, intentID string) error {
	return s.store.UpdatePaymentStatus(ctx, intentID, "succeeded")
}

// FailIntent records a failed payment against its intent.
func (s *StripeService) FailIntent(ctx context.Context, intentID string) error {
	return s.store.UpdatePaymentStatus(ctx, intentID, "failed")
}
