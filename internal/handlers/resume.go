package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

const resumeField = "resume"

type ResumeHandler struct {
	service *app.Service
}

func NewResumeHandler(service *app.Service) *ResumeHandler {
	return &ResumeHandler{service: service}
}

// Upload serves both the first upload and re-uploads; either way the
// stored summary for the registration number is replaced.
func (h *ResumeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reg := r.PathValue("reg")
	if err := ownResume(r, reg); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	data, err := h.readResume(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	summary, err := h.service.Summarizer.Summarize(r.Context(), reg, data)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"summary":            summary,
		"registrationNumber": reg,
	})
}

func (h *ResumeHandler) readResume(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	limit := h.service.Config.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		logger.Debug.Printf("Rejected resume upload for %s: %v", r.PathValue("reg"), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMissingFile, err)
	}

	file, _, err := r.FormFile(resumeField)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMissingFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMissingFile, err)
	}
	return data, nil
}

func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	reg := r.PathValue("reg")
	if err := ownResume(r, reg); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	summary, err := h.service.Summarizer.Get(r.Context(), reg)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ownResume restricts a student session to its own registration number.
// Admins and requests without a session are not restricted here.
func ownResume(r *http.Request, reg string) error {
	session, ok := app.SessionFrom(r.Context())
	if !ok || session.Role != models.RoleStudent || session.Username == reg {
		return nil
	}
	logger.Debug.Printf("Student %s denied resume of %s", session.Username, reg)
	return apperrors.ErrPermissionDenied
}
