package ticket_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"venue-booking/internal/logger"
	"venue-booking/internal/tickets"
	"venue-booking/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	TicketService *tickets.TicketService
	Logger        *logger.Logger
}

// ViewTicket returns ticket metadata including the QR PNG bytes.
func (h *Handler) ViewTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")
	ticket, err := h.TicketService.GetTicket(r.Context(), ticketID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ViewTicket: %v", err))
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(utils.SuccessResponse("Ticket found", ticket)); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ViewTicket: failed to encode response: %v", err))
	}
}

// ViewTicketByRegistration resolves the e-ticket behind a registration ref.
func (h *Handler) ViewTicketByRegistration(w http.ResponseWriter, r *http.Request) {
	registrationRef := chi.URLParam(r, "registrationRef")
	ticket, err := h.TicketService.GetTicketByRegistration(r.Context(), registrationRef)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ViewTicketByRegistration: %v", err))
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(utils.SuccessResponse("Ticket found", ticket)); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ViewTicketByRegistration: failed to encode response: %v", err))
	}
}

// DownloadTicketPDF streams the printable e-ticket.
func (h *Handler) DownloadTicketPDF(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")
	pdfBytes, err := h.TicketService.RenderPDF(r.Context(), ticketID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("DownloadTicketPDF: %v", err))
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="e-ticket-%s.pdf"`, ticketID))
	if _, err := w.Write(pdfBytes); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DownloadTicketPDF: failed to write response: %v", err))
	}
}

// CheckinTicket marks a ticket as used at the gate.
func (h *Handler) CheckinTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")
	if err := h.TicketService.Checkin(r.Context(), ticketID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CheckinTicket: %v", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(utils.ErrorResponse("Check-in failed", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(utils.SuccessResponse("Checked in", nil))
}
