package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RegistrationRequest is the public payload for registering into an event.
type RegistrationRequest struct {
	EventName    string `json:"event_name"`
	Sport        string `json:"sport"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"` // participant | spectator
	Participants int    `json:"participants"`
	Date         string `json:"date"`
}

type Registration struct {
	bun.BaseModel `bun:"table:registrations"`

	RegistrationRef string    `bun:"registration_ref,pk" json:"registration_ref"`
	EventName       string    `bun:"event_name,notnull" json:"event_name"`
	Sport           string    `bun:"sport,notnull" json:"sport"`
	Name            string    `bun:"name,notnull" json:"name"`
	Email           string    `bun:"email,notnull" json:"email"`
	Phone           string    `bun:"phone" json:"phone"`
	Role            string    `bun:"role,notnull" json:"role"`
	Participants    int       `bun:"participants,notnull" json:"participants"`
	Date            string    `bun:"date,notnull" json:"date"`
	SeatNumbers     []int     `bun:"seat_numbers,array" json:"seat_numbers"`
	Fee             float64   `bun:"fee,notnull" json:"fee"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Ticket is the QR e-ticket issued for a registration.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	TicketID        string    `bun:"ticket_id,pk" json:"ticket_id"`
	RegistrationRef string    `bun:"registration_ref,notnull" json:"registration_ref"`
	EventName       string    `bun:"event_name,notnull" json:"event_name"`
	HolderName      string    `bun:"holder_name,notnull" json:"holder_name"`
	Participants    int       `bun:"participants,notnull" json:"participants"`
	Date            string    `bun:"date,notnull" json:"date"`
	SeatNumbers     []int     `bun:"seat_numbers,array" json:"seat_numbers"`
	QRCode          []byte    `bun:"qr_code" json:"qr_code,omitempty"`
	IssuedAt        time.Time `bun:"issued_at,notnull" json:"issued_at"`
	CheckedIn       bool      `bun:"checked_in" json:"checked_in"`
	CheckedInTime   time.Time `bun:"checked_in_time,nullzero" json:"checked_in_time,omitempty"`
}

// TicketPayload is the information baked into the encrypted QR code.
type TicketPayload struct {
	RegistrationRef string `json:"registration_id"`
	Name            string `json:"name"`
	Event           string `json:"event"`
	Participants    int    `json:"participants"`
	Date            string `json:"date"`
	SeatNumbers     []int  `json:"seat_numbers"`
}
