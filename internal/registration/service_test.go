package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue-booking/internal/logger"
	"venue-booking/internal/models"
)

// Mock implementations for testing

type MockRegistrationDB struct {
	registrations map[string]*models.Registration
	shouldFailOn  string
	failErr       error
}

func NewMockRegistrationDB() *MockRegistrationDB {
	return &MockRegistrationDB{registrations: make(map[string]*models.Registration)}
}

func (m *MockRegistrationDB) CreateRegistration(ctx context.Context, reg models.Registration) error {
	if m.shouldFailOn == "CreateRegistration" {
		return m.failErr
	}
	m.registrations[reg.RegistrationRef] = &reg
	return nil
}

func (m *MockRegistrationDB) GetRegistrationByRef(ctx context.Context, ref string) (*models.Registration, error) {
	reg, ok := m.registrations[ref]
	if !ok {
		return nil, errors.New("registration not found")
	}
	return reg, nil
}

func (m *MockRegistrationDB) ListRegistrations(ctx context.Context, limit int) ([]models.Registration, error) {
	var out []models.Registration
	for _, r := range m.registrations {
		out = append(out, *r)
	}
	return out, nil
}

func (m *MockRegistrationDB) CountParticipants(ctx context.Context, eventName string) (int, error) {
	count := 0
	for _, r := range m.registrations {
		if r.EventName == eventName && r.Role == "participant" {
			count += r.Participants
		}
	}
	return count, nil
}

type MockSeatAllocator struct {
	next         int
	shouldFailOn string
	failErr      error
}

func (m *MockSeatAllocator) AllocateSeats(ctx context.Context, eventName string, count int) ([]int, error) {
	if m.shouldFailOn == "AllocateSeats" {
		return nil, m.failErr
	}
	seats := make([]int, 0, count)
	for i := 0; i < count; i++ {
		m.next++
		seats = append(seats, m.next)
	}
	return seats, nil
}

type MockTicketIssuer struct {
	issued       int
	shouldFailOn string
	failErr      error
}

func (m *MockTicketIssuer) IssueTicket(ctx context.Context, reg models.Registration) (*models.Ticket, error) {
	if m.shouldFailOn == "IssueTicket" {
		return nil, m.failErr
	}
	m.issued++
	return &models.Ticket{
		TicketID:        "ticket-1",
		RegistrationRef: reg.RegistrationRef,
		EventName:       reg.EventName,
		HolderName:      reg.Name,
		Participants:    reg.Participants,
		Date:            reg.Date,
		SeatNumbers:     reg.SeatNumbers,
		IssuedAt:        time.Now(),
	}, nil
}

type MockRegMailer struct {
	sent chan models.Registration
}

func NewMockRegMailer() *MockRegMailer {
	return &MockRegMailer{sent: make(chan models.Registration, 8)}
}

func (m *MockRegMailer) SendRegistrationConfirmation(reg models.Registration, ticketPDF string) error {
	m.sent <- reg
	return nil
}

type MockRegPublisher struct {
	published []models.Registration
}

func (m *MockRegPublisher) PublishRegistrationCreated(reg models.Registration) error {
	m.published = append(m.published, reg)
	return nil
}

func newTestService(mockDB *MockRegistrationDB, seats *MockSeatAllocator, issuer *MockTicketIssuer, events *MockRegPublisher) *Service {
	var publisher EventPublisher
	if events != nil {
		publisher = events
	}
	svc := NewService(mockDB, seats, issuer, publisher, nil, logger.NewLogger())
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validRegistration() models.RegistrationRequest {
	return models.RegistrationRequest{
		EventName:    "Monsoon Cricket Cup",
		Sport:        "cricket",
		Name:         "Priya Nair",
		Email:        "priya@example.com",
		Phone:        "9876543210",
		Role:         "participant",
		Participants: 2,
		Date:         "2026-09-15",
	}
}

func TestRegister(t *testing.T) {
	mockDB := NewMockRegistrationDB()
	seats := &MockSeatAllocator{}
	issuer := &MockTicketIssuer{}
	events := &MockRegPublisher{}
	svc := newTestService(mockDB, seats, issuer, events)

	reg, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if reg.RegistrationRef == "" {
		t.Error("Expected a registration reference")
	}
	// Two cricket participants would cost 1000; the flat cap applies.
	if reg.Fee != 500 {
		t.Errorf("Expected capped fee 500, got %.2f", reg.Fee)
	}
	if len(reg.SeatNumbers) != 2 {
		t.Errorf("Expected 2 seat numbers, got %v", reg.SeatNumbers)
	}
	if issuer.issued != 1 {
		t.Errorf("Expected 1 issued ticket, got %d", issuer.issued)
	}
	if len(events.published) != 1 {
		t.Errorf("Expected 1 published event, got %d", len(events.published))
	}
	if _, err := mockDB.GetRegistrationByRef(context.Background(), reg.RegistrationRef); err != nil {
		t.Errorf("Registration was not stored: %v", err)
	}
}

func TestRegisterSendsSingleConfirmation(t *testing.T) {
	mail := NewMockRegMailer()
	svc := newTestService(NewMockRegistrationDB(), &MockSeatAllocator{}, &MockTicketIssuer{}, nil)
	svc.Mailer = mail

	if _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	select {
	case <-mail.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a confirmation email to be sent")
	}
	select {
	case reg := <-mail.sent:
		t.Errorf("Expected exactly one confirmation email, got a second for %s", reg.RegistrationRef)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRegisterSpectatorPaysNothing(t *testing.T) {
	svc := newTestService(NewMockRegistrationDB(), &MockSeatAllocator{}, &MockTicketIssuer{}, nil)

	req := validRegistration()
	req.Role = "spectator"
	req.Participants = 1

	reg, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if reg.Fee != 0 {
		t.Errorf("Spectators should pay nothing, got %.2f", reg.Fee)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(NewMockRegistrationDB(), &MockSeatAllocator{}, &MockTicketIssuer{}, nil)

	tests := []struct {
		name   string
		mutate func(*models.RegistrationRequest)
	}{
		{"missing event", func(r *models.RegistrationRequest) { r.EventName = "" }},
		{"missing sport", func(r *models.RegistrationRequest) { r.Sport = "" }},
		{"bad email", func(r *models.RegistrationRequest) { r.Email = "nope" }},
		{"bad phone", func(r *models.RegistrationRequest) { r.Phone = "12345" }},
		{"bad role", func(r *models.RegistrationRequest) { r.Role = "organizer" }},
		{"participant without headcount", func(r *models.RegistrationRequest) { r.Participants = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)
			if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterSurvivesTicketFailure(t *testing.T) {
	issuer := &MockTicketIssuer{shouldFailOn: "IssueTicket", failErr: errors.New("qr generation broke")}
	mockDB := NewMockRegistrationDB()
	svc := newTestService(mockDB, &MockSeatAllocator{}, issuer, nil)

	reg, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Registration should stand when ticketing fails, got %v", err)
	}
	if _, err := mockDB.GetRegistrationByRef(context.Background(), reg.RegistrationRef); err != nil {
		t.Errorf("Registration was not stored: %v", err)
	}
}

func TestRegisterSeatAllocationFailure(t *testing.T) {
	seats := &MockSeatAllocator{shouldFailOn: "AllocateSeats", failErr: errors.New("redis down")}
	mockDB := NewMockRegistrationDB()
	svc := newTestService(mockDB, seats, &MockTicketIssuer{}, nil)

	if _, err := svc.Register(context.Background(), validRegistration()); err == nil {
		t.Fatal("Expected an error when seat allocation fails")
	}
	if len(mockDB.registrations) != 0 {
		t.Error("No registration should be stored when seats cannot be allocated")
	}
}
