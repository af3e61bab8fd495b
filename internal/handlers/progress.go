package handlers

import (
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type ProgressHandler struct {
	service *app.Service
}

func NewProgressHandler(service *app.Service) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) Save(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record models.ProgressRecord
		if err := decodeJSON(r, &record); err != nil {
			HandleAPIError(w, r, err)
			return
		}

		if err := h.service.Recorder.RecordProgress(r.Context(), track, &record); err != nil {
			HandleAPIError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"message": "Progress saved successfully",
		})
	}
}

func (h *ProgressHandler) Blog(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := h.service.Recorder.BlogForCompany(r.Context(), track, r.PathValue("company"))
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"content": content})
	}
}

func (h *ProgressHandler) List(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.service.Recorder.ListProgress(r.Context(), track, r.PathValue("company"))
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

type EligibilityHandler struct {
	service *app.Service
}

func NewEligibilityHandler(service *app.Service) *EligibilityHandler {
	return &EligibilityHandler{service: service}
}

func (h *EligibilityHandler) Passed(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := h.service.Evaluator.PassedStudents(r.Context(), track, r.PathValue("company"))
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, students)
	}
}

func (h *EligibilityHandler) BranchCount(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		count, err := h.service.Evaluator.PassedCountByBranch(r.Context(), track, q.Get("company"), q.Get("branch"))
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

// Roster builds over the comma separated companies query parameter, or
// over every company of the track when it is absent.
func (h *EligibilityHandler) Roster(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var companies []string
		for _, c := range strings.Split(r.URL.Query().Get("companies"), ",") {
			if c = strings.TrimSpace(c); c != "" {
				companies = append(companies, c)
			}
		}

		if len(companies) > 0 {
			writeJSON(w, http.StatusOK, h.service.Roster.BuildRoster(r.Context(), track, companies))
			return
		}

		roster, err := h.service.Roster.BuildTrackRoster(r.Context(), track)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, roster)
	}
}
