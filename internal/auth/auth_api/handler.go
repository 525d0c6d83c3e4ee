package auth_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"venue-booking/internal/auth"
	"venue-booking/internal/logger"
	"venue-booking/internal/models"
	"venue-booking/internal/utils"
)

type Handler struct {
	AuthService *auth.Service
	Logger      *logger.Logger
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	resp, err := h.AuthService.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Email already registered", err.Error()))
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
			h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid signup", err.Error()))
		default:
			h.Logger.Error("API", fmt.Sprintf("Signup: %v", err))
			h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Signup failed", err.Error()))
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse("Account created", resp))
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	resp, err := h.AuthService.Signin(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Invalid email or password", err.Error()))
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Signin: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Signin failed", err.Error()))
		return
	}

	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Signed in", resp))
}

// Me returns the authenticated caller's own account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		h.writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Not signed in", "missing session"))
		return
	}

	user, err := h.AuthService.Profile(r.Context(), userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Me: %v", err))
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Account not found", err.Error()))
		return
	}

	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Account fetched", user))
}

func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	rawToken, err := auth.ExtractTokenFromRequest(r)
	if err != nil {
		h.writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Not signed in", err.Error()))
		return
	}

	if err := h.AuthService.Signout(r.Context(), rawToken); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Signout: %v", err))
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Signout failed", err.Error()))
		return
	}

	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Signed out", nil))
}
