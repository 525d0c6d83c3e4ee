package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"venue-booking/internal/auth"
	"venue-booking/internal/availability"
	"venue-booking/internal/booking"
	"venue-booking/internal/logger"
	"venue-booking/internal/models"
	"venue-booking/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	BookingService *booking.Service
	Logger         *logger.Logger
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

// CheckAvailability handles the quick slot check used by the landing page
// widget and the booking form.
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req models.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CheckAvailability: bad body: %v", err))
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	result, err := h.BookingService.CheckAvailability(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid availability query", err.Error()))
		case errors.Is(err, availability.ErrSlotPassed):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Slot has already passed", err.Error()))
		default:
			h.Logger.Error("API", fmt.Sprintf("CheckAvailability: %v", err))
			h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Availability check failed", err.Error()))
		}
		return
	}

	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Availability checked", result))
}

// PlaceBooking handles a booking form submission.
func (h *Handler) PlaceBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("PlaceBooking: bad body: %v", err))
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	resp, err := h.BookingService.PlaceBooking(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid booking", err.Error()))
		case errors.Is(err, availability.ErrSlotPassed):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Slot has already passed", err.Error()))
		case errors.Is(err, booking.ErrSlotTaken):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Slot already taken", err.Error()))
		case errors.Is(err, booking.ErrCapacityFull):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Slot capacity reached", err.Error()))
		case errors.Is(err, booking.ErrDayFullyBooked):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Fully booked for this day", err.Error()))
		default:
			h.Logger.Error("API", fmt.Sprintf("PlaceBooking: %v", err))
			h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Booking failed", err.Error()))
		}
		return
	}

	h.Logger.Info("API", fmt.Sprintf("PlaceBooking: created %s", resp.BookingRef))
	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse("Booking created", resp))
}

// GetBooking returns one booking by ref.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "bookingRef")
	bookingData, err := h.BookingService.GetBooking(r.Context(), ref)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetBooking: not found: %v", err))
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Booking not found", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Booking found", bookingData))
}

// ListBookings returns bookings newest-first for the admin dashboard.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	bookings, err := h.BookingService.ListBookings(r.Context(), limit)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListBookings: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to list bookings", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Bookings listed", bookings))
}

// ListMyBookings returns the authenticated caller's own bookings. The email
// comes from the session claims, never from the query string.
func (h *Handler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	email := auth.Email(r.Context())
	if email == "" {
		h.writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("No session email", "sign in to list your bookings"))
		return
	}

	bookings, err := h.BookingService.ListBookingsByEmail(r.Context(), email)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListMyBookings: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to list bookings", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Bookings listed", bookings))
}
