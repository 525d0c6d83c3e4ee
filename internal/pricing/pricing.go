package pricing

import "strings"

// PricingMode selects between per-session and membership pricing for slot
// bookings.
type PricingMode string

const (
	PayPerUse  PricingMode = "pay_per_use"
	Membership PricingMode = "membership"
)

// Per-person price for one two-hour session block, pay-per-use mode.
var pricePerPerson = map[string]float64{
	"football":   150,
	"cricket":    200,
	"basketball": 150,
	"badminton":  100,
	"tennis":     100,
	"gym":        200,
	"swimming":   200,
}

// Flat membership fee per sport.
var memberFee = map[string]float64{
	"football":   1500,
	"cricket":    1800,
	"basketball": 1500,
	"badminton":  1200,
	"tennis":     1200,
	"gym":        2000,
	"swimming":   2000,
}

// Per-guest fee per session block when a member brings extra players.
var guestFee = map[string]float64{
	"football":   100,
	"cricket":    120,
	"basketball": 100,
	"badminton":  100,
	"tennis":     100,
	"gym":        150,
	"swimming":   150,
}

// Per-participant event registration fee. This table is intentionally
// separate from the booking tables above; the two surfaces price the same
// sports differently.
var participantFee = map[string]float64{
	"football":   400,
	"cricket":    500,
	"basketball": 350,
	"badminton":  200,
	"tennis":     200,
	"gym":        150,
	"swimming":   150,
}

const (
	defaultParticipantFee = 300
	eventFeeCap           = 500
)

// sessionBlocks converts a duration in hours into billable two-hour blocks,
// rounding up.
func sessionBlocks(durationHours int) int {
	if durationHours <= 0 {
		return 0
	}
	return (durationHours + 1) / 2
}

// BookingQuote computes the total amount for a slot booking. Invalid or
// missing inputs yield 0 rather than an error; validation belongs to the
// booking service.
func BookingQuote(sport string, players, durationHours int, mode PricingMode) float64 {
	sport = strings.ToLower(sport)
	if players <= 0 || durationHours <= 0 {
		return 0
	}

	blocks := sessionBlocks(durationHours)

	switch mode {
	case PayPerUse:
		price, ok := pricePerPerson[sport]
		if !ok {
			return 0
		}
		return price * float64(players) * float64(blocks)
	case Membership:
		flat, ok := memberFee[sport]
		if !ok {
			return 0
		}
		if players == 1 {
			return flat
		}
		return flat + guestFee[sport]*float64(players-1)*float64(blocks)
	default:
		return 0
	}
}

// EventFee computes the registration fee for event participants, capped at a
// flat maximum per registration. Spectators pay nothing.
func EventFee(sport string, participants int) float64 {
	if participants <= 0 {
		return 0
	}
	fee, ok := participantFee[strings.ToLower(sport)]
	if !ok {
		fee = defaultParticipantFee
	}
	total := fee * float64(participants)
	if total > eventFeeCap {
		return eventFeeCap
	}
	return total
}
