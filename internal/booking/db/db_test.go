package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"venue-booking/internal/booking/db"
	"venue-booking/internal/models"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	// Named in-memory database so every pooled connection sees the same data.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if err := bunDB.ResetModel(ctx, (*models.Booking)(nil)); err != nil {
		t.Fatalf("Failed to create bookings table: %v", err)
	}
	if _, err := bunDB.ExecContext(ctx,
		`CREATE UNIQUE INDEX uniq_bookings_slot ON bookings (sport, location, date, time_slot)`); err != nil {
		t.Fatalf("Failed to create slot index: %v", err)
	}

	return &db.DB{Bun: bunDB}
}

func sampleBooking(ref, slot string) models.Booking {
	return models.Booking{
		BookingRef:  ref,
		BookingType: "sports",
		Sport:       "football",
		Location:    "Downtown Arena",
		Date:        "2026-09-01",
		TimeSlot:    slot,
		Players:     5,
		Duration:    2,
		Name:        "Arjun Mehta",
		Email:       "arjun@example.com",
		TotalAmount: 750,
		PaymentMode: "pay_on_spot",
		CreatedAt:   time.Now(),
	}
}

func TestCreateAndGetBooking(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	booking := sampleBooking("bkg_1", "8-10")
	if err := store.CreateBooking(ctx, booking); err != nil {
		t.Fatalf("Failed to create booking: %v", err)
	}

	got, err := store.GetBookingByRef(ctx, "bkg_1")
	if err != nil {
		t.Fatalf("Failed to fetch booking: %v", err)
	}
	if got.Sport != "football" || got.TimeSlot != "8-10" || got.Players != 5 {
		t.Errorf("Fetched booking mismatch: %+v", got)
	}
}

func TestCreateBookingDuplicateSlot(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.CreateBooking(ctx, sampleBooking("bkg_1", "8-10")); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.CreateBooking(ctx, sampleBooking("bkg_2", "8-10"))
	if !errors.Is(err, db.ErrDuplicateSlot) {
		t.Errorf("Expected ErrDuplicateSlot for the same slot tuple, got %v", err)
	}

	// A different slot on the same day is fine.
	if err := store.CreateBooking(ctx, sampleBooking("bkg_3", "10-12")); err != nil {
		t.Errorf("Different slot should insert cleanly: %v", err)
	}
}

func TestSumPlayersForSlot(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	b1 := sampleBooking("bkg_1", "8-10")
	b1.Players = 8
	b2 := sampleBooking("bkg_2", "10-12")
	b2.Players = 6
	other := sampleBooking("bkg_3", "8-10")
	other.Location = "Riverside Ground"
	other.Players = 4

	for _, b := range []models.Booking{b1, b2, other} {
		if err := store.CreateBooking(ctx, b); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	sum, err := store.SumPlayersForSlot(ctx, "football", "Downtown Arena", "2026-09-01", "8-10")
	if err != nil {
		t.Fatalf("SumPlayersForSlot failed: %v", err)
	}
	if sum != 8 {
		t.Errorf("Expected 8 players in the slot, got %d", sum)
	}

	sum, err = store.SumPlayersForSlot(ctx, "football", "Downtown Arena", "2026-09-01", "18-20")
	if err != nil {
		t.Fatalf("SumPlayersForSlot failed: %v", err)
	}
	if sum != 0 {
		t.Errorf("Expected 0 players in an empty slot, got %d", sum)
	}
}

func TestBookedSlotsForDay(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	for i, slot := range []string{"6-8", "8-10", "10-12"} {
		if err := store.CreateBooking(ctx, sampleBooking(fmt.Sprintf("bkg_%d", i), slot)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	slots, err := store.BookedSlotsForDay(ctx, "football", "2026-09-01")
	if err != nil {
		t.Fatalf("BookedSlotsForDay failed: %v", err)
	}
	if len(slots) != 3 {
		t.Errorf("Expected 3 distinct slots, got %v", slots)
	}

	slots, err = store.BookedSlotsForDay(ctx, "cricket", "2026-09-01")
	if err != nil {
		t.Fatalf("BookedSlotsForDay failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("Expected no slots for an unbooked sport, got %v", slots)
	}
}

func TestListBookingsByEmail(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	mine := sampleBooking("bkg_1", "8-10")
	theirs := sampleBooking("bkg_2", "10-12")
	theirs.Email = "someone.else@example.com"
	for _, b := range []models.Booking{mine, theirs} {
		if err := store.CreateBooking(ctx, b); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	bookings, err := store.ListBookingsByEmail(ctx, "arjun@example.com")
	if err != nil {
		t.Fatalf("ListBookingsByEmail failed: %v", err)
	}
	if len(bookings) != 1 || bookings[0].BookingRef != "bkg_1" {
		t.Errorf("Expected only bkg_1, got %+v", bookings)
	}
}

func TestSetPaymentRef(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.CreateBooking(ctx, sampleBooking("bkg_1", "8-10")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.SetPaymentRef(ctx, "bkg_1", "pi_abc"); err != nil {
		t.Fatalf("SetPaymentRef failed: %v", err)
	}

	got, err := store.GetBookingByRef(ctx, "bkg_1")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got.PaymentRef != "pi_abc" {
		t.Errorf("Expected payment ref pi_abc, got %q", got.PaymentRef)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.GetBookingByRef(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected an error for a missing booking")
	}
	if !db.IsNotFound(err) {
		t.Errorf("Expected a not-found error, got %v", err)
	}
}
