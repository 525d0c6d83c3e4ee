package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"venue-booking/internal/analytics"
	"venue-booking/internal/logger"
	"venue-booking/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *analytics.Service
	logger  *logger.Logger
}

func NewHandler(service *analytics.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes mounts the analytics endpoints on an admin router group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
		r.Get("/sports", h.GetBySport)
		r.Get("/daily", h.GetDaily)
		r.Get("/slots/{sport}", h.GetSlotUtilization)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetDashboardSummary(r.Context())
	if err != nil {
		h.logger.Error("API", fmt.Sprintf("GetSummary: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to compute summary", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Summary computed", summary))
}

func (h *Handler) GetBySport(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.GetBookingsBySport(r.Context())
	if err != nil {
		h.logger.Error("API", fmt.Sprintf("GetBySport: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to compute sport metrics", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Sport metrics computed", metrics))
}

func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	metrics, err := h.service.GetDailyBookings(r.Context(), days)
	if err != nil {
		h.logger.Error("API", fmt.Sprintf("GetDaily: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to compute daily metrics", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Daily metrics computed", metrics))
}

func (h *Handler) GetSlotUtilization(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")
	metrics, err := h.service.GetSlotUtilization(r.Context(), sport)
	if err != nil {
		h.logger.Error("API", fmt.Sprintf("GetSlotUtilization: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to compute slot utilization", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Slot utilization computed", metrics))
}
