package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CanonicalSlots are the seven bookable time bands for every sport and
// location, keyed by their start/end hour in venue-local time.
var CanonicalSlots = []string{
	"6-8",
	"8-10",
	"10-12",
	"12-14",
	"14-16",
	"16-18",
	"18-20",
}

// capacities is the maximum total players allowed to share one
// (sport, location, date, slot) combination.
var capacities = map[string]int{
	"football":   22,
	"cricket":    22,
	"basketball": 10,
	"badminton":  4,
	"tennis":     4,
	"gym":        15,
	"swimming":   15,
}

const defaultCapacity = 99

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

var (
	ErrMissingField = errors.New("location, sport, date and time slot are all required")
	ErrInvalidSlot  = errors.New("unknown time slot")
	ErrInvalidDate  = errors.New("invalid date")
	ErrSlotPassed   = errors.New("slot has already passed for today")
)

// venueLocation is the timezone all slot times are interpreted in.
var venueLocation *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	venueLocation = loc
}

// Capacity returns the player capacity for a sport.
func Capacity(sport string) int {
	if c, ok := capacities[strings.ToLower(sport)]; ok {
		return c
	}
	return defaultCapacity
}

// IsCanonicalSlot reports whether slot is one of the seven bookable bands.
func IsCanonicalSlot(slot string) bool {
	for _, s := range CanonicalSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStartHour parses the start hour out of a slot band like "8-10".
func SlotStartHour(slot string) (int, error) {
	parts := strings.SplitN(slot, "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return hour, nil
}

// ValidateRequest checks the four mandatory fields of an availability query.
// No remote call is made when any field is missing or malformed.
func ValidateRequest(location, sport, date, slot string) error {
	if location == "" || sport == "" || date == "" || slot == "" {
		return ErrMissingField
	}
	if !IsCanonicalSlot(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	if _, err := time.ParseInLocation(DateLayout, date, venueLocation); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// CheckSlotPassed rejects a slot on today's date once its start hour has
// gone by in venue-local time. The current time is rounded up to the next
// whole hour and the slot expires only when that rounded hour is strictly
// past the start, so "8-10" stays bookable right up to 8:00 sharp and is
// gone from 8:01 on.
func CheckSlotPassed(date, slot string, now time.Time) error {
	requested, err := time.ParseInLocation(DateLayout, date, venueLocation)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	local := now.In(venueLocation)
	if requested.Year() != local.Year() || requested.YearDay() != local.YearDay() {
		return nil
	}

	startHour, err := SlotStartHour(slot)
	if err != nil {
		return err
	}

	effectiveHour := local.Hour()
	if local.Minute() > 0 || local.Second() > 0 {
		effectiveHour++
	}
	if effectiveHour > startHour {
		return ErrSlotPassed
	}
	return nil
}

// Decide reports whether a request for `requested` players fits under the
// sport's capacity given the players already booked into the same slot.
// The boundary case sum+requested == capacity is still available.
func Decide(sport string, bookedPlayers, requested int) bool {
	return bookedPlayers+requested <= Capacity(sport)
}
