package availability_test

import (
	"errors"
	"testing"
	"time"

	"venue-booking/internal/availability"
)

var venueTZ = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

func TestCapacity(t *testing.T) {
	tests := []struct {
		sport string
		want  int
	}{
		{"football", 22},
		{"cricket", 22},
		{"basketball", 10},
		{"badminton", 4},
		{"tennis", 4},
		{"gym", 15},
		{"swimming", 15},
		{"FOOTBALL", 22},
		{"chess", 99},
	}
	for _, tt := range tests {
		if got := availability.Capacity(tt.sport); got != tt.want {
			t.Errorf("Capacity(%q) = %d, want %d", tt.sport, got, tt.want)
		}
	}
}

func TestDecide(t *testing.T) {
	// Filling a slot exactly to capacity is allowed.
	if !availability.Decide("football", 20, 2) {
		t.Error("20 booked + 2 requested should fit a 22 capacity")
	}
	if availability.Decide("football", 20, 3) {
		t.Error("20 booked + 3 requested should not fit a 22 capacity")
	}
	if !availability.Decide("badminton", 0, 4) {
		t.Error("empty badminton slot should take 4 players")
	}
	if availability.Decide("badminton", 4, 1) {
		t.Error("full badminton slot should reject another player")
	}
}

func TestValidateRequest(t *testing.T) {
	if err := availability.ValidateRequest("Downtown Arena", "football", "2026-09-01", "8-10"); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	if err := availability.ValidateRequest("", "football", "2026-09-01", "8-10"); !errors.Is(err, availability.ErrMissingField) {
		t.Errorf("missing location: got %v, want ErrMissingField", err)
	}
	if err := availability.ValidateRequest("Downtown Arena", "football", "2026-09-01", "9-11"); !errors.Is(err, availability.ErrInvalidSlot) {
		t.Errorf("non-canonical slot: got %v, want ErrInvalidSlot", err)
	}
	if err := availability.ValidateRequest("Downtown Arena", "football", "01-09-2026", "8-10"); !errors.Is(err, availability.ErrInvalidDate) {
		t.Errorf("bad date format: got %v, want ErrInvalidDate", err)
	}
}

func TestCheckSlotPassed(t *testing.T) {
	// 11:00 sharp on the requested day.
	now := time.Date(2026, 9, 1, 11, 0, 0, 0, venueTZ)

	if err := availability.CheckSlotPassed("2026-09-01", "8-10", now); !errors.Is(err, availability.ErrSlotPassed) {
		t.Errorf("8-10 at 11:00 should be expired, got %v", err)
	}
	if err := availability.CheckSlotPassed("2026-09-01", "12-14", now); err != nil {
		t.Errorf("12-14 at 11:00 should still be bookable, got %v", err)
	}

	// An hour into the band counts as missed.
	if err := availability.CheckSlotPassed("2026-09-01", "10-12", now); !errors.Is(err, availability.ErrSlotPassed) {
		t.Errorf("10-12 at 11:00 should be expired, got %v", err)
	}
}

func TestCheckSlotPassedOnTheHour(t *testing.T) {
	// At exactly 10:00 the 10-12 band can still be taken.
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, venueTZ)
	if err := availability.CheckSlotPassed("2026-09-01", "10-12", now); err != nil {
		t.Errorf("10-12 at exactly 10:00 should be bookable, got %v", err)
	}
}

func TestCheckSlotPassedRoundsUpPartialHours(t *testing.T) {
	// 10:30 rounds up to 11, so the 10-12 band is closed.
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, venueTZ)
	if err := availability.CheckSlotPassed("2026-09-01", "10-12", now); !errors.Is(err, availability.ErrSlotPassed) {
		t.Errorf("10-12 at 10:30 should be expired, got %v", err)
	}
	if err := availability.CheckSlotPassed("2026-09-01", "12-14", now); err != nil {
		t.Errorf("12-14 at 10:30 should be bookable, got %v", err)
	}
}

func TestCheckSlotPassedFutureDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 19, 45, 0, 0, venueTZ)
	if err := availability.CheckSlotPassed("2026-09-02", "6-8", now); err != nil {
		t.Errorf("tomorrow's slot should never be expired, got %v", err)
	}
}
