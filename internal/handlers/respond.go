package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
)

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Debug.Printf("Invalid request body for %s: %v", r.URL.Path, err)
		if errors.Is(err, apperrors.ErrValidation) {
			return err
		}
		return apperrors.NewValidationError("", "invalid request body")
	}
	return nil
}

// HandleAPIError maps err onto a status code and a client-safe message.
// Server-side failures are logged with full detail and answered generically.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, "validation failed"
	case errors.Is(err, apperrors.ErrMissingFile):
		status, message = http.StatusBadRequest, apperrors.ErrMissingFile.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, message = http.StatusForbidden, "permission denied"
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, "already exists"
	case errors.Is(err, apperrors.ErrExtractionFailed):
		message = apperrors.ErrExtractionFailed.Error()
	case errors.Is(err, apperrors.ErrSummarizationFailed):
		message = apperrors.ErrSummarizationFailed.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
	} else if custom, ok := apperrors.MessageOf(err); ok {
		message = custom
	}

	writeJSON(w, status, errorResponse{
		Message: message,
		Field:   apperrors.FieldOf(err),
	})
}
