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

type CompanyStore interface {
	ListCompanies(ctx context.Context, track models.Track) ([]models.Company, error)
	GetCompany(ctx context.Context, track models.Track, name string) (*models.Company, error)
	CreateCompany(ctx context.Context, track models.Track, company models.Company) error
	DeleteCompany(ctx context.Context, track models.Track, name string) (bool, error)
}

// Catalog manages the companies of each track. Companies are only ever
// added or deleted, never edited.
type Catalog struct {
	store CompanyStore
}

func NewCatalog(store CompanyStore) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) List(ctx context.Context, track models.Track) ([]models.Company, error) {
	return c.store.ListCompanies(ctx, track)
}

func (c *Catalog) Add(ctx context.Context, track models.Track, input *models.CompanyInput) (models.Company, error) {
	if input == nil {
		return models.Company{}, apperrors.NewValidationError("", "company is required")
	}
	if err := input.Validate(); err != nil {
		return models.Company{}, models.AsValidationError(err)
	}
	company := input.Company()

	existing, err := c.store.GetCompany(ctx, track, company.Name)
	if err != nil {
		return models.Company{}, err
	}
	if existing != nil {
		return models.Company{}, apperrors.NewConflictError(
			fmt.Sprintf("company %s already exists", company.Name))
	}

	if err := c.store.CreateCompany(ctx, track, company); err != nil {
		return models.Company{}, err
	}

	metrics.CompanyChangesTotal.WithLabelValues(string(track), "add").Inc()
	logger.Info.Printf("Added %s company %s with %d rounds", track, company.Name, company.RequiredRounds)

	return company, nil
}

// Delete removes the company and reports whether it existed. Progress rows
// naming the company stay behind.
func (c *Catalog) Delete(ctx context.Context, track models.Track, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, apperrors.NewValidationError("name", "company name is required")
	}

	deleted, err := c.store.DeleteCompany(ctx, track, name)
	if err != nil {
		return false, err
	}
	if deleted {
		metrics.CompanyChangesTotal.WithLabelValues(string(track), "delete").Inc()
		logger.Info.Printf("Deleted %s company %s", track, name)
	}
	return deleted, nil
}
