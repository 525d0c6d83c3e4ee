package newsletter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"venue-booking/internal/logger"
	"venue-booking/internal/utils"
)

type Handler struct {
	Service *Service
	Logger  *logger.Logger
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	if err := h.Service.Subscribe(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid email", err.Error()))
		case errors.Is(err, ErrAlreadySubscribed):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Already subscribed", err.Error()))
		default:
			h.Logger.Error("API", fmt.Sprintf("Subscribe: %v", err))
			h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Subscription failed", err.Error()))
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse("Subscribed", nil))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("List subscribers: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to list subscribers", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Subscribers listed", subs))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}
