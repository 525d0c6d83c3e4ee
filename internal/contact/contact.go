package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"venue-booking/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrValidation = errors.New("validation failed")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	Bun *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{Bun: db}
}

// Create stores a contact-form message.
func (s *Service) Create(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error) {
	if msg.Name == "" || msg.Message == "" {
		return nil, fmt.Errorf("%w: name and message are required", ErrValidation)
	}
	if !emailRe.MatchString(msg.Email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	if _, err := s.Bun.NewInsert().Model(&msg).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return &msg, nil
}

// List returns messages newest-first for the admin dashboard.
func (s *Service) List(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := s.Bun.NewSelect().
		Model(&msgs).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return msgs, nil
}
