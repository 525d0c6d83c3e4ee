package payment

import (
	"context"
	"time"

	"venue-booking/internal/models"

	"github.com/uptrace/bun"
)

// Storage is the bun-backed payment store.
type Storage struct {
	Bun *bun.DB
}

func (s *Storage) SavePayment(ctx context.Context, payment *models.Payment) error {
	_, err := s.Bun.NewInsert().Model(payment).Exec(ctx)
	return err
}

func (s *Storage) GetPaymentByBooking(ctx context.Context, bookingRef string) (*models.Payment, error) {
	var payment models.Payment
	err := s.Bun.NewSelect().
		Model(&payment).
		Where("booking_ref = ?", bookingRef).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Storage) UpdatePaymentStatus(ctx context.Context, intentID, status string) error {
	_, err := s.Bun.NewUpdate().
		Model((*models.Payment)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("intent_id = ?", intentID).
		Exec(ctx)
	return err
}
