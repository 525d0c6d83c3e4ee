package db

import (
	"context"

	"venue-booking/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// CreateRegistration inserts a new registration row.
func (d *DB) CreateRegistration(ctx context.Context, reg models.Registration) error {
	_, err := d.Bun.NewInsert().Model(&reg).Exec(ctx)
	return err
}

// GetRegistrationByRef fetches one registration.
func (d *DB) GetRegistrationByRef(ctx context.Context, ref string) (*models.Registration, error) {
	var reg models.Registration
	err := d.Bun.NewSelect().
		Model(&reg).
		Where("registration_ref = ?", ref).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListRegistrations returns registrations newest-first for the admin
// dashboard.
func (d *DB) ListRegistrations(ctx context.Context, limit int) ([]models.Registration, error) {
	var regs []models.Registration
	q := d.Bun.NewSelect().
		Model(&regs).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []models.Registration{}
	}
	return regs, nil
}

// CountParticipants totals the participants registered for an event.
func (d *DB) CountParticipants(ctx context.Context, eventName string) (int, error) {
	var counts []int
	err := d.Bun.NewSelect().
		Column("participants").
		Table("registrations").
		Where("event_name = ?", eventName).
		Where("role = ?", "participant").
		Scan(ctx, &counts)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}
