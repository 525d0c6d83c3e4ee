package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BookingRequest is the public payload for placing a slot booking.
type BookingRequest struct {
	BookingType string `json:"booking_type"`
	Sport       string `json:"sport"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Players     int    `json:"players"`
	Duration    int    `json:"duration"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PricingMode string `json:"pricing_mode"`
	PaymentMode string `json:"payment_mode"`
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	BookingRef  string    `bun:"booking_ref,pk" json:"booking_ref"`
	BookingType string    `bun:"booking_type,notnull" json:"booking_type"`
	Sport       string    `bun:"sport,notnull" json:"sport"`
	Location    string    `bun:"location,notnull" json:"location"`
	Date        string    `bun:"date,notnull" json:"date"`
	TimeSlot    string    `bun:"time_slot,notnull" json:"time_slot"`
	Players     int       `bun:"players,notnull" json:"players"`
	Duration    int       `bun:"duration,notnull" json:"duration"`
	Name        string    `bun:"name,notnull" json:"name"`
	Email       string    `bun:"email,notnull" json:"email"`
	Phone       string    `bun:"phone" json:"phone"`
	TotalAmount float64   `bun:"total_amount,notnull" json:"total_amount"`
	PaymentMode string    `bun:"payment_mode,notnull" json:"payment_mode"`
	PaymentRef  string    `bun:"payment_ref,nullzero" json:"payment_ref,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// BookingResponse is returned once a booking has been stored.
type BookingResponse struct {
	BookingRef   string  `json:"booking_ref"`
	Sport        string  `json:"sport"`
	Location     string  `json:"location"`
	Date         string  `json:"date"`
	TimeSlot     string  `json:"time_slot"`
	TotalAmount  float64 `json:"total_amount"`
	PaymentMode  string  `json:"payment_mode"`
	PaymentRef   string  `json:"payment_ref,omitempty"`
	ClientSecret string  `json:"client_secret,omitempty"`
}

// AvailabilityRequest is the quick-check query shared by the booking form
// and the landing-page widget.
type AvailabilityRequest struct {
	Location string `json:"location"`
	Sport    string `json:"sport"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Players  int    `json:"players"`
}

// AvailabilityResult reports a single slot decision.
type AvailabilityResult struct {
	Available     bool   `json:"available"`
	Reason        string `json:"reason,omitempty"`
	BookedPlayers int    `json:"booked_players"`
	Capacity      int    `json:"capacity"`
}
