package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type AuthHandler struct {
	service *app.Service
}

func NewAuthHandler(service *app.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		HandleAPIError(w, r, models.AsValidationError(err))
		return
	}

	ok, err := h.service.Auth.Authenticate(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !ok {
		logger.Info.Printf("Failed %s login for %s", req.Role, req.Username)
		HandleAPIError(w, r, apperrors.ErrInvalidCredentials)
		return
	}

	resp := map[string]interface{}{
		"success": true,
		"role":    req.Role,
	}
	if h.service.AuthEnabled() {
		session, err := h.service.Sessions.Create(r.Context(), req.Username, req.Role)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		resp["token"] = session.Token
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := app.SessionFrom(r.Context()); ok {
		if err := h.service.Sessions.Delete(r.Context(), session.Token); err != nil {
			HandleAPIError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := app.SessionFrom(r.Context())
	if !ok {
		HandleAPIError(w, r, apperrors.NewNotFoundError("sessions are disabled"))
		return
	}
	writeJSON(w, http.StatusOK, session)
}
