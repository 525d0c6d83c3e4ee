package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"venue-booking/internal/logger"
	"venue-booking/internal/models"
	"venue-booking/internal/utils"
)

type Handler struct {
	Service *Service
	Logger  *logger.Logger
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	stored, err := h.Service.Create(r.Context(), msg)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid message", err.Error()))
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Create contact message: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to store message", err.Error()))
		return
	}

	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse("Message received", stored))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("List contact messages: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to list messages", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Messages listed", msgs))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}
