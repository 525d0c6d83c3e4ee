package tickets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"venue-booking/internal/models"
)

type MockTicketDB struct {
	tickets      map[string]*models.Ticket
	shouldFailOn string
	failErr      error
}

func NewMockTicketDB() *MockTicketDB {
	return &MockTicketDB{tickets: make(map[string]*models.Ticket)}
}

func (m *MockTicketDB) CreateTicket(ctx context.Context, ticket models.Ticket) error {
	if m.shouldFailOn == "CreateTicket" {
		return m.failErr
	}
	m.tickets[ticket.TicketID] = &ticket
	return nil
}

func (m *MockTicketDB) GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket, ok := m.tickets[ticketID]
	if !ok {
		return nil, errors.New("ticket not found")
	}
	return ticket, nil
}

func (m *MockTicketDB) GetTicketByRegistration(ctx context.Context, registrationRef string) (*models.Ticket, error) {
	for _, t := range m.tickets {
		if t.RegistrationRef == registrationRef {
			return t, nil
		}
	}
	return nil, errors.New("ticket not found")
}

func (m *MockTicketDB) UpdateTicket(ctx context.Context, ticket models.Ticket) error {
	if m.shouldFailOn == "UpdateTicket" {
		return m.failErr
	}
	if _, ok := m.tickets[ticket.TicketID]; !ok {
		return errors.New("ticket not found")
	}
	m.tickets[ticket.TicketID] = &ticket
	return nil
}

func sampleRegistration() models.Registration {
	return models.Registration{
		RegistrationRef: "reg_1",
		EventName:       "Monsoon Cricket Cup",
		Sport:           "cricket",
		Name:            "Priya Nair",
		Email:           "priya@example.com",
		Role:            "participant",
		Participants:    2,
		Date:            "2026-09-15",
		SeatNumbers:     []int{7, 8},
		Fee:             500,
	}
}

func TestIssueTicket(t *testing.T) {
	mockDB := NewMockTicketDB()
	svc := NewTicketService(mockDB, "test-secret")

	ticket, err := svc.IssueTicket(context.Background(), sampleRegistration())
	if err != nil {
		t.Fatalf("Failed to issue ticket: %v", err)
	}
	if ticket.TicketID == "" {
		t.Error("Expected a ticket id")
	}
	if len(ticket.QRCode) == 0 {
		t.Error("Expected a QR code image")
	}
	if ticket.EventName != "Monsoon Cricket Cup" || ticket.HolderName != "Priya Nair" {
		t.Errorf("Ticket fields mismatch: %+v", ticket)
	}
	if _, ok := mockDB.tickets[ticket.TicketID]; !ok {
		t.Error("Ticket was not stored")
	}
}

func TestGetTicketByRegistration(t *testing.T) {
	mockDB := NewMockTicketDB()
	svc := NewTicketService(mockDB, "test-secret")

	issued, err := svc.IssueTicket(context.Background(), sampleRegistration())
	if err != nil {
		t.Fatalf("Failed to issue ticket: %v", err)
	}

	got, err := svc.GetTicketByRegistration(context.Background(), "reg_1")
	if err != nil {
		t.Fatalf("Failed to fetch by registration: %v", err)
	}
	if got.TicketID != issued.TicketID {
		t.Errorf("Expected ticket %s, got %s", issued.TicketID, got.TicketID)
	}
}

func TestRenderPDF(t *testing.T) {
	mockDB := NewMockTicketDB()
	svc := NewTicketService(mockDB, "test-secret")

	ticket, err := svc.IssueTicket(context.Background(), sampleRegistration())
	if err != nil {
		t.Fatalf("Failed to issue ticket: %v", err)
	}

	doc, err := svc.RenderPDF(context.Background(), ticket.TicketID)
	if err != nil {
		t.Fatalf("Failed to render PDF: %v", err)
	}
	if len(doc) == 0 || !strings.HasPrefix(string(doc[:5]), "%PDF-") {
		t.Error("Expected a PDF document")
	}
}

func TestCheckin(t *testing.T) {
	mockDB := NewMockTicketDB()
	svc := NewTicketService(mockDB, "test-secret")
	svc.now = func() time.Time { return time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC) }

	ticket, err := svc.IssueTicket(context.Background(), sampleRegistration())
	if err != nil {
		t.Fatalf("Failed to issue ticket: %v", err)
	}

	if err := svc.Checkin(context.Background(), ticket.TicketID); err != nil {
		t.Fatalf("First checkin should succeed: %v", err)
	}
	stored := mockDB.tickets[ticket.TicketID]
	if !stored.CheckedIn || stored.CheckedInTime.IsZero() {
		t.Errorf("Checkin not recorded: %+v", stored)
	}

	// A second scan of the same ticket is rejected.
	if err := svc.Checkin(context.Background(), ticket.TicketID); err == nil {
		t.Error("Second checkin should be rejected")
	}
}

func TestCheckinUnknownTicket(t *testing.T) {
	svc := NewTicketService(NewMockTicketDB(), "test-secret")

	if err := svc.Checkin(context.Background(), "missing"); err == nil {
		t.Error("Expected an error for an unknown ticket")
	}
}
