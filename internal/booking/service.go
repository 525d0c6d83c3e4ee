package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"venue-booking/internal/availability"
	"venue-booking/internal/booking/db"
	"venue-booking/internal/logger"
	"venue-booking/internal/models"
	"venue-booking/internal/pricing"
	"venue-booking/internal/utils"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrSlotTaken      = errors.New("slot already taken")
	ErrCapacityFull   = errors.New("not enough capacity left in this slot")
	ErrDayFullyBooked = errors.New("fully booked for this day")
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,99}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
)

type DBLayer interface {
	CreateBooking(ctx context.Context, booking models.Booking) error
	GetBookingByRef(ctx context.Context, ref string) (*models.Booking, error)
	SumPlayersForSlot(ctx context.Context, sport, location, date, slot string) (int, error)
	BookedSlotsForDay(ctx context.Context, sport, date string) ([]string, error)
	ListBookings(ctx context.Context, limit int) ([]models.Booking, error)
	ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error)
}

type SlotHolder interface {
	HoldSlot(ctx context.Context, sport, location, date, slot, bookingRef string) (bool, error)
	ReleaseSlot(ctx context.Context, sport, location, date, slot, bookingRef string) error
}

type EventPublisher interface {
	PublishBookingCreated(booking models.Booking) error
}

type Mailer interface {
	SendBookingConfirmation(booking models.Booking) error
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, bookingRef string, amount float64) (intentID, clientSecret string, err error)
}

type Service struct {
	DB       DBLayer
	Holds    SlotHolder
	Events   EventPublisher
	Mailer   Mailer
	Payments PaymentGateway
	Logger   *logger.Logger
	now      func() time.Time
}

func NewService(dbLayer DBLayer, holds SlotHolder, events EventPublisher, mailer Mailer, payments PaymentGateway, log *logger.Logger) *Service {
	return &Service{
		DB:       dbLayer,
		Holds:    holds,
		Events:   events,
		Mailer:   mailer,
		Payments: payments,
		Logger:   log,
		now:      time.Now,
	}
}

// CheckAvailability answers the quick-check query shared by the booking
// form and the landing-page widget. Missing fields and expired slots are
// rejected before any database read.
func (s *Service) CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (*models.AvailabilityResult, error) {
	if err := availability.ValidateRequest(req.Location, req.Sport, req.Date, req.TimeSlot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	requested := req.Players
	if requested <= 0 {
		requested = 1
	}

	if err := availability.CheckSlotPassed(req.Date, req.TimeSlot, s.now()); err != nil {
		return nil, err
	}

	booked, err := s.DB.SumPlayersForSlot(ctx, req.Sport, req.Location, req.Date, req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings for slot: %w", err)
	}

	result := &models.AvailabilityResult{
		BookedPlayers: booked,
		Capacity:      availability.Capacity(req.Sport),
	}
	if availability.Decide(req.Sport, booked, requested) {
		result.Available = true
	} else {
		result.Reason = "slot capacity reached"
	}
	return result, nil
}

// PlaceBooking runs the full booking pipeline: validate, expired-slot gate,
// fully-booked-day gate, capacity check, slot hold, price, optional payment
// intent, insert. The unique index on the slot tuple is what finally decides
// a duplicate; the earlier reads only produce friendlier errors.
func (s *Service) PlaceBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if err := availability.CheckSlotPassed(req.Date, req.TimeSlot, s.now()); err != nil {
		return nil, err
	}

	bookedSlots, err := s.DB.BookedSlotsForDay(ctx, req.Sport, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to read booked slots: %w", err)
	}
	if coversAllSlots(bookedSlots) {
		return nil, ErrDayFullyBooked
	}

	booked, err := s.DB.SumPlayersForSlot(ctx, req.Sport, req.Location, req.Date, req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings for slot: %w", err)
	}
	if !availability.Decide(req.Sport, booked, req.Players) {
		return nil, ErrCapacityFull
	}

	bookingRef := utils.GenerateBookingRef()

	held, err := s.Holds.HoldSlot(ctx, req.Sport, req.Location, req.Date, req.TimeSlot, bookingRef)
	if err != nil {
		return nil, fmt.Errorf("slot hold error: %w", err)
	}
	if !held {
		return nil, ErrSlotTaken
	}

	amount := pricing.BookingQuote(req.Sport, req.Players, req.Duration, pricing.PricingMode(req.PricingMode))

	booking := models.Booking{
		BookingRef:  bookingRef,
		BookingType: req.BookingType,
		Sport:       strings.ToLower(req.Sport),
		Location:    req.Location,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Players:     req.Players,
		Duration:    req.Duration,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		TotalAmount: amount,
		PaymentMode: req.PaymentMode,
		CreatedAt:   s.now(),
	}

	var clientSecret string
	if req.PaymentMode == "online" && s.Payments != nil {
		intentID, secret, err := s.Payments.CreateIntent(ctx, bookingRef, amount)
		if err != nil {
			s.release(ctx, req, bookingRef)
			return nil, fmt.Errorf("payment setup failed: %w", err)
		}
		booking.PaymentRef = intentID
		clientSecret = secret
	}

	if err := s.DB.CreateBooking(ctx, booking); err != nil {
		s.release(ctx, req, bookingRef)
		if errors.Is(err, db.ErrDuplicateSlot) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	if s.Events != nil {
		if err := s.Events.PublishBookingCreated(booking); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("booking created event not published for %s: %v", bookingRef, err))
		}
	}
	if s.Mailer != nil {
		go func(b models.Booking) {
			if err := s.Mailer.SendBookingConfirmation(b); err != nil {
				s.Logger.Warn("EMAIL", fmt.Sprintf("confirmation email failed for %s: %v", b.BookingRef, err))
			}
		}(booking)
	}

	s.Logger.LogBooking("CREATE", bookingRef, fmt.Sprintf("%s %s %s %s players=%d amount=%.2f",
		booking.Sport, booking.Location, booking.Date, booking.TimeSlot, booking.Players, amount))

	return &models.BookingResponse{
		BookingRef:   bookingRef,
		Sport:        booking.Sport,
		Location:     booking.Location,
		Date:         booking.Date,
		TimeSlot:     booking.TimeSlot,
		TotalAmount:  amount,
		PaymentMode:  booking.PaymentMode,
		PaymentRef:   booking.PaymentRef,
		ClientSecret: clientSecret,
	}, nil
}

func (s *Service) GetBooking(ctx context.Context, ref string) (*models.Booking, error) {
	return s.DB.GetBookingByRef(ctx, ref)
}

func (s *Service) ListBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	return s.DB.ListBookings(ctx, limit)
}

func (s *Service) ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return s.DB.ListBookingsByEmail(ctx, email)
}

func (s *Service) release(ctx context.Context, req models.BookingRequest, bookingRef string) {
	if err := s.Holds.ReleaseSlot(ctx, req.Sport, req.Location, req.Date, req.TimeSlot, bookingRef); err != nil {
		s.Logger.Warn("REDIS", fmt.Sprintf("failed to release slot hold for %s: %v", bookingRef, err))
	}
}

func (s *Service) validate(req models.BookingRequest) error {
	if err := availability.ValidateRequest(req.Location, req.Sport, req.Date, req.TimeSlot); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Players <= 0 {
		return fmt.Errorf("%w: players must be positive", ErrValidation)
	}
	if req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
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
	switch req.PaymentMode {
	case "online", "pay_on_spot":
	default:
		return fmt.Errorf("%w: payment_mode must be online or pay_on_spot", ErrValidation)
	}
	switch pricing.PricingMode(req.PricingMode) {
	case pricing.PayPerUse, pricing.Membership:
	default:
		return fmt.Errorf("%w: pricing_mode must be pay_per_use or membership", ErrValidation)
	}
	switch req.BookingType {
	case "sports", "events":
	default:
		return fmt.Errorf("%w: booking_type must be sports or events", ErrValidation)
	}
	return nil
}

// coversAllSlots reports whether the booked set includes every canonical
// slot of the day.
func coversAllSlots(booked []string) bool {
	seen := make(map[string]bool, len(booked))
	for _, s := range booked {
		seen[s] = true
	}
	for _, slot := range availability.CanonicalSlots {
		if !seen[slot] {
			return false
		}
	}
	return true
}
