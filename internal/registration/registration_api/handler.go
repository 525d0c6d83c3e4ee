package registration_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"venue-booking/internal/logger"
	"venue-booking/internal/models"
	"venue-booking/internal/registration"
	"venue-booking/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	RegistrationService *registration.Service
	Logger              *logger.Logger
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

// Register handles an event registration form submission.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Register: bad body: %v", err))
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	reg, err := h.RegistrationService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, registration.ErrValidation) {
			h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid registration", err.Error()))
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Register: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Registration failed", err.Error()))
		return
	}

	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse("Registration created", reg))
}

// GetRegistration returns one registration by ref.
func (h *Handler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "registrationRef")
	reg, err := h.RegistrationService.GetRegistration(r.Context(), ref)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetRegistration: not found: %v", err))
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Registration not found", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Registration found", reg))
}

// ListRegistrations returns registrations for the admin dashboard.
func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	regs, err := h.RegistrationService.ListRegistrations(r.Context(), limit)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListRegistrations: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to list registrations", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Registrations listed", regs))
}

// EventHeadcount reports how many participants an event has so far.
func (h *Handler) EventHeadcount(w http.ResponseWriter, r *http.Request) {
	eventName := chi.URLParam(r, "eventName")
	count, err := h.RegistrationService.EventHeadcount(r.Context(), eventName)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("EventHeadcount: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to count participants", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Participant count", map[string]int{"participants": count}))
}
