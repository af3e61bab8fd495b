package placement

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"
	"golang.org/x/sync/errgroup"

	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

const defaultRosterConcurrency = 4

type PassedLister interface {
	PassedStudents(ctx context.Context, track models.Track, company string) ([]models.PassedStudent, error)
}

type CompanyLister interface {
	ListCompanies(ctx context.Context, track models.Track) ([]models.Company, error)
}

// RosterBuilder merges per-company pass lists into one entry per student.
type RosterBuilder struct {
	evaluator   PassedLister
	companies   CompanyLister
	concurrency int
}

func NewRosterBuilder(evaluator PassedLister, companies CompanyLister, concurrency int) *RosterBuilder {
	if concurrency <= 0 {
		concurrency = defaultRosterConcurrency
	}
	return &RosterBuilder{
		evaluator:   evaluator,
		companies:   companies,
		concurrency: concurrency,
	}
}

// BuildRoster looks up every company concurrently and merges the results
// in input order, so a student's primary company is the first company in
// the list they passed. A failed lookup counts as an empty list.
func (b *RosterBuilder) BuildRoster(ctx context.Context, track models.Track, companies []string) []models.RosterEntry {
	results := make([][]models.PassedStudent, len(companies))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, company := range companies {
		g.Go(func() error {
			students, err := b.evaluator.PassedStudents(ctx, track, company)
			if err != nil {
				logger.Error.Printf("Roster lookup for %s company %q failed: %v", track, company, err)
				return nil
			}
			results[i] = students
			return nil
		})
	}
	g.Wait()

	var order []string
	byKey := make(map[string]*models.RosterEntry)
	for i, company := range companies {
		for _, s := range results[i] {
			key := rosterKey(s)
			entry, ok := byKey[key]
			if !ok {
				entry = &models.RosterEntry{
					Name:           s.Name,
					RegNumber:      s.RegNumber,
					Branch:         s.Branch,
					PrimaryCompany: company,
				}
				byKey[key] = entry
				order = append(order, key)
			}
			if !slices.Contains(entry.Placements, company) {
				entry.Placements = append(entry.Placements, company)
			}
		}
	}

	roster := make([]models.RosterEntry, 0, len(order))
	for _, key := range order {
		entry := byKey[key]
		entry.Status = models.StatusNotPlaced
		if len(entry.Placements) > 0 {
			entry.Status = models.StatusPlaced
		}
		roster = append(roster, *entry)
	}
	return roster
}

// BuildTrackRoster builds the roster over every company of the track.
func (b *RosterBuilder) BuildTrackRoster(ctx context.Context, track models.Track) ([]models.RosterEntry, error) {
	companies, err := b.companies.ListCompanies(ctx, track)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}
	return b.BuildRoster(ctx, track, names), nil
}

// rosterKey keeps registration numbers and the name/branch fallback in
// separate key spaces, so a registration number that looks like
// "name-branch" never merges two students.
func rosterKey(s models.PassedStudent) string {
	if reg := strings.TrimSpace(s.RegNumber); reg != "" {
		return "reg:" + reg
	}
	return "nb:" + s.Name + "\x00" + s.Branch
}
