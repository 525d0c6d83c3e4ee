package registration

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"venue-booking/internal/logger"
	"venue-booking/internal/models"
	"venue-booking/internal/pricing"
	"venue-booking/internal/tickets/pdf"
	"venue-booking/internal/utils"
)

var ErrValidation = errors.New("validation failed")

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,99}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
)

type DBLayer interface {
	CreateRegistration(ctx context.Context, reg models.Registration) error
	GetRegistrationByRef(ctx context.Context, ref string) (*models.Registration, error)
	ListRegistrations(ctx context.Context, limit int) ([]models.Registration, error)
	CountParticipants(ctx context.Context, eventName string) (int, error)
}

type SeatAllocator interface {
	AllocateSeats(ctx context.Context, eventName string, count int) ([]int, error)
}

type TicketIssuer interface {
	IssueTicket(ctx context.Context, reg models.Registration) (*models.Ticket, error)
}

type EventPublisher interface {
	PublishRegistrationCreated(reg models.Registration) error
}

type Mailer interface {
	SendRegistrationConfirmation(reg models.Registration, ticketPDF string) error
}

type Service struct {
	DB      DBLayer
	Seats   SeatAllocator
	Tickets TicketIssuer
	Events  EventPublisher
	Mailer  Mailer
	Logger  *logger.Logger
	now     func() time.Time
}

func NewService(dbLayer DBLayer, seats SeatAllocator, tickets TicketIssuer, events EventPublisher, mailer Mailer, log *logger.Logger) *Service {
	return &Service{
		DB:      dbLayer,
		Seats:   seats,
		Tickets: tickets,
		Events:  events,
		Mailer:  mailer,
		Logger:  log,
		now:     time.Now,
	}
}

// Register records an event registration: fee from the participant table,
// seat numbers from the server-side counter, e-ticket issued, confirmation
// mailed fire-and-forget.
func (s *Service) Register(ctx context.Context, req models.RegistrationRequest) (*models.Registration, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	reg := models.Registration{
		RegistrationRef: utils.GenerateRegistrationRef(),
		EventName:       req.EventName,
		Sport:           strings.ToLower(req.Sport),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Role:            req.Role,
		Participants:    req.Participants,
		Date:            req.Date,
		CreatedAt:       s.now(),
	}

	if req.Role == "participant" {
		reg.Fee = pricing.EventFee(req.Sport, req.Participants)
	}

	seats, err := s.Seats.AllocateSeats(ctx, req.EventName, req.Participants)
	if err != nil {
		return nil, fmt.Errorf("seat allocation failed: %w", err)
	}
	reg.SeatNumbers = seats

	if err := s.DB.CreateRegistration(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to store registration: %w", err)
	}

	ticket, err := s.Tickets.IssueTicket(ctx, reg)
	if err != nil {
		// The registration stands; the ticket can be reissued later.
		s.Logger.Error("TICKET", fmt.Sprintf("ticket not issued for %s: %v", reg.RegistrationRef, err))
	}

	if s.Events != nil {
		if err := s.Events.PublishRegistrationCreated(reg); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("registration created event not published for %s: %v", reg.RegistrationRef, err))
		}
	}

	if s.Mailer != nil {
		go s.mailConfirmation(reg, ticket)
	}

	s.Logger.Info("REGISTRATION", fmt.Sprintf("[CREATE] %s - %s %s participants=%d fee=%.2f",
		reg.RegistrationRef, reg.EventName, reg.Role, reg.Participants, reg.Fee))

	return &reg, nil
}

func (s *Service) GetRegistration(ctx context.Context, ref string) (*models.Registration, error) {
	return s.DB.GetRegistrationByRef(ctx, ref)
}

func (s *Service) ListRegistrations(ctx context.Context, limit int) ([]models.Registration, error) {
	return s.DB.ListRegistrations(ctx, limit)
}

// EventHeadcount totals the participants registered into an event.
func (s *Service) EventHeadcount(ctx context.Context, eventName string) (int, error) {
	return s.DB.CountParticipants(ctx, eventName)
}

func (s *Service) mailConfirmation(reg models.Registration, ticket *models.Ticket) {
	var pdfBase64 string
	if ticket != nil {
		pdfBytes, err := pdf.GenerateTicketPDF(*ticket, ticket.QRCode)
		if err != nil {
			s.Logger.Warn("EMAIL", fmt.Sprintf("ticket PDF not rendered for %s: %v", reg.RegistrationRef, err))
		} else {
			pdfBase64 = base64.StdEncoding.EncodeToString(pdfBytes)
		}
	}
	if err := s.Mailer.SendRegistrationConfirmation(reg, pdfBase64); err != nil {
		s.Logger.Warn("EMAIL", fmt.Sprintf("confirmation email failed for %s: %v", reg.RegistrationRef, err))
	}
}

func (s *Service) validate(req models.RegistrationRequest) error {
	if req.EventName == "" || req.Sport == "" || req.Date == "" {
		return fmt.Errorf("%w: event name, sport and date are required", ErrValidation)
	}
	if !nameRe.MatchString(req.Name) {
		return fmt.Errorf("%w: invalid name", ErrValidation)
	}
	if !emailRe.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if req.Phone != "" && !phoneRe.MatchString(req.Phone) {
		return fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	switch req.Role {
	case "participant":
		if req.Participants <= 0 {
			return fmt.Errorf("%w: participants must be positive", ErrValidation)
		}
	case "spectator":
		if req.Participants < 0 {
			return fmt.Errorf("%w: participants cannot be negative", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: role must be participant or spectator", ErrValidation)
	}
	return nil
}
