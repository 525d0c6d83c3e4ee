package newsletter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"venue-booking/internal/models"

	"github.com/uptrace/bun"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	Bun *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{Bun: db}
}

// Subscribe records a newsletter subscriber. The email is the primary key,
// so re-subscribing reports a friendly error instead of a second row.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}

	sub := models.Subscriber{
		Email:     email,
		CreatedAt: time.Now(),
	}
	_, err := s.Bun.NewInsert().Model(&sub).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to store subscriber: %w", err)
	}
	return nil
}

// List returns subscribers newest-first for the admin dashboard.
func (s *Service) List(ctx context.Context) ([]models.Subscriber, error) {
	var subs []models.Subscriber
	err := s.Bun.NewSelect().
		Model(&subs).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []models.Subscriber{}
	}
	return subs, nil
}
