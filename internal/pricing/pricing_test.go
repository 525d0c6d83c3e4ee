package pricing_test

import (
	"testing"

	"venue-booking/internal/pricing"
)

func TestBookingQuotePayPerUse(t *testing.T) {
	tests := []struct {
		name     string
		sport    string
		players  int
		duration int
		want     float64
	}{
		{"football 3 players 3 hours", "football", 3, 3, 900},
		{"football 2 players 2 hours", "football", 2, 2, 300},
		{"badminton 4 players 1 hour", "badminton", 4, 1, 400},
		{"cricket 11 players 2 hours", "cricket", 11, 2, 2200},
		{"odd duration rounds up to next block", "tennis", 1, 3, 200},
		{"uppercase sport name", "FOOTBALL", 1, 2, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.BookingQuote(tt.sport, tt.players, tt.duration, pricing.PayPerUse)
			if got != tt.want {
				t.Errorf("BookingQuote(%s, %d, %d) = %.2f, want %.2f",
					tt.sport, tt.players, tt.duration, got, tt.want)
			}
		})
	}
}

func TestBookingQuoteMembership(t *testing.T) {
	// A lone member pays the flat fee regardless of duration.
	got := pricing.BookingQuote("badminton", 1, 2, pricing.Membership)
	if got != 1200 {
		t.Errorf("single member quote = %.2f, want 1200", got)
	}

	// Guests are billed per session block on top of the flat fee.
	got = pricing.BookingQuote("badminton", 3, 4, pricing.Membership)
	if got != 1600 {
		t.Errorf("member with 2 guests for 4h = %.2f, want 1600", got)
	}
}

func TestBookingQuoteInvalidInputs(t *testing.T) {
	if got := pricing.BookingQuote("football", 0, 2, pricing.PayPerUse); got != 0 {
		t.Errorf("zero players should quote 0, got %.2f", got)
	}
	if got := pricing.BookingQuote("football", 2, 0, pricing.PayPerUse); got != 0 {
		t.Errorf("zero duration should quote 0, got %.2f", got)
	}
	if got := pricing.BookingQuote("chess", 2, 2, pricing.PayPerUse); got != 0 {
		t.Errorf("unknown sport should quote 0, got %.2f", got)
	}
	if got := pricing.BookingQuote("football", 2, 2, pricing.PricingMode("hourly")); got != 0 {
		t.Errorf("unknown mode should quote 0, got %.2f", got)
	}
}

func TestEventFee(t *testing.T) {
	// One badminton participant sits under the cap.
	if got := pricing.EventFee("badminton", 1); got != 200 {
		t.Errorf("badminton 1 participant = %.2f, want 200", got)
	}

	// Three cricket participants would cost 1500; the cap kicks in.
	if got := pricing.EventFee("cricket", 3); got != 500 {
		t.Errorf("cricket 3 participants = %.2f, want capped 500", got)
	}

	// Unknown sports fall back to the default per-head fee.
	if got := pricing.EventFee("kabaddi", 1); got != 300 {
		t.Errorf("unknown sport 1 participant = %.2f, want 300", got)
	}

	if got := pricing.EventFee("football", 0); got != 0 {
		t.Errorf("zero participants = %.2f, want 0", got)
	}
}
