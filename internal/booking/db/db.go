package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"venue-booking/internal/models"

	"github.com/lib/pq"
	"github.com/uptrace/bun"
)

// ErrDuplicateSlot is returned when the unique index on
// (sport, location, date, time_slot) rejects an insert. The index is the
// single source of truth for "slot already taken".
var ErrDuplicateSlot = errors.New("slot already taken")

type DB struct {
	Bun *bun.DB
}

// CreateBooking inserts a new booking row. A unique-violation from the
// slot index is mapped to ErrDuplicateSlot.
func (d *DB) CreateBooking(ctx context.Context, booking models.Booking) error {
	_, err := d.Bun.NewInsert().Model(&booking).Exec(ctx)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateSlot
	}
	return err
}

// GetBookingByRef fetches one booking by its reference.
func (d *DB) GetBookingByRef(ctx context.Context, ref string) (*models.Booking, error) {
	var booking models.Booking
	err := d.Bun.NewSelect().
		Model(&booking).
		Where("booking_ref = ?", ref).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// SumPlayersForSlot totals the players already booked into one
// (sport, location, date, time_slot) tuple, reading at most 100 rows.
func (d *DB) SumPlayersForSlot(ctx context.Context, sport, location, date, slot string) (int, error) {
	var players []int
	err := d.Bun.NewSelect().
		Column("players").
		Table("bookings").
		Where("sport = ?", sport).
		Where("location = ?", location).
		Where("date = ?", date).
		Where("time_slot = ?", slot).
		Limit(100).
		Scan(ctx, &players)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, p := range players {
		sum += p
	}
	return sum, nil
}

// BookedSlotsForDay returns the distinct time slots already booked for a
// sport on a given date.
func (d *DB) BookedSlotsForDay(ctx context.Context, sport, date string) ([]string, error) {
	var slots []string
	err := d.Bun.NewSelect().
		ColumnExpr("DISTINCT time_slot").
		Table("bookings").
		Where("sport = ?", sport).
		Where("date = ?", date).
		Scan(ctx, &slots)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// ListBookings returns bookings newest-first for the admin dashboard.
func (d *DB) ListBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	q := d.Bun.NewSelect().
		Model(&bookings).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// ListBookingsByEmail returns a visitor's own bookings.
func (d *DB) ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Where("email = ?", email).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// SetPaymentRef attaches a payment reference to an existing booking.
func (d *DB) SetPaymentRef(ctx context.Context, bookingRef, paymentRef string) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Booking)(nil)).
		Set("payment_ref = ?", paymentRef).
		Where("booking_ref = ?", bookingRef).
		Exec(ctx)
	return err
}

// IsNotFound reports whether err means no rows matched.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// sqlite (test dialect) has no typed error in the shim
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
