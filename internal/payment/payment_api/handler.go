package payment_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"venue-booking/internal/logger"
	"venue-booking/internal/payment"
	"venue-booking/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	StripeService *payment.StripeService
	Store         payment.Store
	Logger        *logger.Logger
}

// stripeEvent is the slice of the Stripe webhook payload we act on.
type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// Webhook records payment intent outcomes pushed by Stripe. Unknown event
// types are acknowledged and ignored so Stripe stops retrying them.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var event stripeEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.Logger.Error("STRIPE", fmt.Sprintf("Webhook: bad payload: %v", err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	intentID := event.Data.Object.ID
	if intentID == "" {
		http.Error(w, "missing intent id", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		if err := h.StripeService.ConfirmIntent(r.Context(), intentID); err != nil {
			h.Logger.Error("STRIPE", fmt.Sprintf("Webhook: confirm %s: %v", intentID, err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		h.Logger.Info("STRIPE", fmt.Sprintf("PaymentIntent %s succeeded", intentID))
	case "payment_intent.payment_failed":
		if err := h.StripeService.FailIntent(r.Context(), intentID); err != nil {
			h.Logger.Error("STRIPE", fmt.Sprintf("Webhook: fail %s: %v", intentID, err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		h.Logger.Warn("STRIPE", fmt.Sprintf("PaymentIntent %s failed", intentID))
	default:
		h.Logger.Debug("STRIPE", fmt.Sprintf("Webhook: ignoring event %s", event.Type))
	}

	w.WriteHeader(http.StatusOK)
}

// GetPaymentByBooking returns the payment record behind a booking, for the
// admin dashboard.
func (h *Handler) GetPaymentByBooking(w http.ResponseWriter, r *http.Request) {
	bookingRef := chi.URLParam(r, "bookingRef")

	pay, err := h.Store.GetPaymentByBooking(r.Context(), bookingRef)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetPaymentByBooking %s: %v", bookingRef, err))
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Payment not found", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Payment fetched", pay))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}
