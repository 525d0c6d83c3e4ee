package tickets

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/models"
	"venue-booking/internal/tickets/pdf"
	"venue-booking/internal/tickets/qr"
	"venue-booking/internal/utils"

	"github.com/google/uuid"
)

type TicketDBLayer interface {
	CreateTicket(ctx context.Context, ticket models.Ticket) error
	GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error)
	GetTicketByRegistration(ctx context.Context, registrationRef string) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, ticket models.Ticket) error
}

type TicketService struct {
	DB    TicketDBLayer
	qrGen *qr.QRGenerator
	now   func() time.Time
}

func NewTicketService(db TicketDBLayer, qrSecret string) *TicketService {
	return &TicketService{
		DB:    db,
		qrGen: qr.NewQRGenerator(qrSecret),
		now:   time.Now,
	}
}

// IssueTicket creates a QR e-ticket for a registration and stores it.
func (s *TicketService) IssueTicket(ctx context.Context, reg models.Registration) (*models.Ticket, error) {
	payload := models.TicketPayload{
		RegistrationRef: reg.RegistrationRef,
		Name:            reg.Name,
		Event:           reg.EventName,
		Participants:    reg.Participants,
		Date:            reg.Date,
		SeatNumbers:     reg.SeatNumbers,
	}

	qrBytes, err := s.qrGen.GenerateEncryptedQR(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR: %w", err)
	}

	ticket := models.Ticket{
		TicketID:        uuid.NewString(),
		RegistrationRef: reg.RegistrationRef,
		EventName:       reg.EventName,
		HolderName:      reg.Name,
		Participants:    reg.Participants,
		Date:            reg.Date,
		SeatNumbers:     reg.SeatNumbers,
		QRCode:          qrBytes,
		IssuedAt:        s.now(),
	}

	if err := s.DB.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to store ticket: %w", err)
	}
	return &ticket, nil
}

// GetTicket fetches a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket, err := s.DB.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("ticket %s not found: %w", ticketID, err)
	}
	return ticket, nil
}

// GetTicketByRegistration fetches the ticket issued for a registration ref.
func (s *TicketService) GetTicketByRegistration(ctx context.Context, registrationRef string) (*models.Ticket, error) {
	ticket, err := s.DB.GetTicketByRegistration(ctx, registrationRef)
	if err != nil {
		return nil, fmt.Errorf("ticket for registration %s not found: %w", registrationRef, err)
	}
	return ticket, nil
}

// RenderPDF produces the printable e-ticket for a stored ticket.
func (s *TicketService) RenderPDF(ctx context.Context, ticketID string) ([]byte, error) {
	ticket, err := s.DB.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("ticket %s not found: %w", ticketID, err)
	}
	return pdf.GenerateTicketPDF(*ticket, ticket.QRCode)
}

// Checkin marks a ticket as used at the venue gate.
func (s *TicketService) Checkin(ctx context.Context, ticketID string) error {
	ticket, err := s.DB.GetTicketByID(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("ticket %s not found: %w", ticketID, err)
	}
	if ticket.CheckedIn {
		return fmt.Errorf("ticket %s already checked in at %s", ticketID, utils.FormatVenueTime(ticket.CheckedInTime))
	}
	ticket.CheckedIn = true
	ticket.CheckedInTime = s.now()
	if err := s.DB.UpdateTicket(ctx, *ticket); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}
