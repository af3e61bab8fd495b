// Package placement holds the read and write paths over company and
// progress rows for both tracks.
package placement

import (
	"context"
	"strings"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

// EligibilityStore is the slice of the placement store the evaluator reads.
type EligibilityStore interface {
	FetchPassedStudents(ctx context.Context, track models.Track, company string) ([]models.PassedStudent, error)
	CountPassedByBranch(ctx context.Context, track models.Track, company, branch string) (int, error)
}

// Evaluator decides who passed a company. Passing is evaluated at read
// time: rounds cleared must equal the company's required rounds exactly.
type Evaluator struct {
	store EligibilityStore
}

func NewEvaluator(store EligibilityStore) *Evaluator {
	return &Evaluator{store: store}
}

// PassedStudents returns the students who cleared exactly the required
// number of rounds, in submission order. A company with no rows, or no
// company at all, yields an empty list.
func (e *Evaluator) PassedStudents(ctx context.Context, track models.Track, company string) ([]models.PassedStudent, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, apperrors.NewValidationError("company", "company is required")
	}
	return e.store.FetchPassedStudents(ctx, track, company)
}

func (e *Evaluator) PassedCountByBranch(ctx context.Context, track models.Track, company, branch string) (int, error) {
	company = strings.TrimSpace(company)
	branch = strings.TrimSpace(branch)
	if company == "" {
		return 0, apperrors.NewValidationError("company", "company is required")
	}
	if branch == "" {
		return 0, apperrors.NewValidationError("branch", "branch is required")
	}
	return e.store.CountPassedByBranch(ctx, track, company, branch)
}
