package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type CompanyHandler struct {
	service *app.Service
}

func NewCompanyHandler(service *app.Service) *CompanyHandler {
	return &CompanyHandler{service: service}
}

func (h *CompanyHandler) List(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies, err := h.service.Catalog.List(r.Context(), track)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, companies)
	}
}

func (h *CompanyHandler) Add(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.CompanyInput
		if err := decodeJSON(r, &input); err != nil {
			HandleAPIError(w, r, err)
			return
		}

		if _, err := h.service.Catalog.Add(r.Context(), track, &input); err != nil {
			HandleAPIError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Company added successfully",
		})
	}
}

// Delete answers 200 whether or not the company existed.
func (h *CompanyHandler) Delete(track models.Track) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")

		deleted, err := h.service.Catalog.Delete(r.Context(), track, name)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}

		message := "Company deleted successfully"
		if !deleted {
			message = "Company not present"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": message,
		})
	}
}
