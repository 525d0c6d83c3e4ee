package db

import (
	"context"

	"venue-booking/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// CreateTicket inserts a new e-ticket row.
func (d *DB) CreateTicket(ctx context.Context, ticket models.Ticket) error {
	_, err := d.Bun.NewInsert().Model(&ticket).Exec(ctx)
	return err
}

// GetTicketByID fetches one ticket.
func (d *DB) GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("ticket_id = ?", ticketID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketByRegistration fetches the ticket issued for a registration.
func (d *DB) GetTicketByRegistration(ctx context.Context, registrationRef string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("registration_ref = ?", registrationRef).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicket saves check-in state changes.
func (d *DB) UpdateTicket(ctx context.Context, ticket models.Ticket) error {
	_, err := d.Bun.NewUpdate().
		Model(&ticket).
		Column("checked_in", "checked_in_time").
		Where("ticket_id = ?", ticket.TicketID).
		Exec(ctx)
	return err
}
