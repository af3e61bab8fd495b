package placement

import (
	"context"
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/metrics"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type ProgressStore interface {
	CreateProgress(ctx context.Context, track models.Track, record *models.ProgressRecord) error
	ListProgress(ctx context.Context, track models.Track, company string) ([]models.ProgressRecord, error)
	GetFirstBlog(ctx context.Context, track models.Track, company string) (*string, error)
}

// Recorder appends self-reported progress. Rounds cleared are not checked
// against the company; repeated submissions become separate rows.
type Recorder struct {
	store ProgressStore
}

func NewRecorder(store ProgressStore) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) RecordProgress(ctx context.Context, track models.Track, record *models.ProgressRecord) error {
	if record == nil {
		return apperrors.NewValidationError("", "progress record is required")
	}
	if err := record.Validate(); err != nil {
		return models.AsValidationError(err)
	}

	if err := r.store.CreateProgress(ctx, track, record); err != nil {
		return err
	}

	metrics.ProgressSubmissionsTotal.WithLabelValues(
		string(track),
		strings.ToUpper(record.Branch),
	).Inc()
	logger.Debug.Printf("Recorded %s progress for %s at %s: %d rounds",
		track, record.RegNumber, record.Company, record.RoundsCleared)

	return nil
}

// BlogForCompany returns the earliest blog written about company.
func (r *Recorder) BlogForCompany(ctx context.Context, track models.Track, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", apperrors.NewValidationError("company", "company is required")
	}

	blog, err := r.store.GetFirstBlog(ctx, track, company)
	if err != nil {
		return "", err
	}
	if blog == nil {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("no blog found for %s", company))
	}
	return *blog, nil
}

func (r *Recorder) ListProgress(ctx context.Context, track models.Track, company string) ([]models.ProgressRecord, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, apperrors.NewValidationError("company", "company is required")
	}
	return r.store.ListProgress(ctx, track, company)
}
