package placement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
	"github.com/shrimpsizemoose/placement-tracker/internal/store"
	"github.com/shrimpsizemoose/placement-tracker/internal/store/sqlite"
)

type fixture struct {
	ctx       context.Context
	store     *sqlite.SQLiteStore
	evaluator *Evaluator
	recorder  *Recorder
	catalog   *Catalog
	roster    *RosterBuilder
}

func setupFixture(t *testing.T) *fixture {
	s, err := sqlite.NewSQLiteStore(&store.DBConfig{
		DSN:           ":memory:",
		Type:          store.DBTypeSQLite,
		MigrationsDir: "../../migrations",
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	evaluator := NewEvaluator(s)
	return &fixture{
		ctx:       context.Background(),
		store:     s,
		evaluator: evaluator,
		recorder:  NewRecorder(s),
		catalog:   NewCatalog(s),
		roster:    NewRosterBuilder(evaluator, s, 2),
	}
}

func (f *fixture) addCompany(t *testing.T, track models.Track, name string, rounds int) {
	_, err := f.catalog.Add(f.ctx, track, &models.CompanyInput{Name: name, RequiredRounds: &rounds})
	require.NoError(t, err)
}

func (f *fixture) record(t *testing.T, track models.Track, reg, branch, company string, rounds int) {
	err := f.recorder.RecordProgress(f.ctx, track, &models.ProgressRecord{
		Name:          "student " + reg,
		RegNumber:     reg,
		Branch:        branch,
		Company:       company,
		RoundsCleared: rounds,
		Blog:          reg + " at " + company,
	})
	require.NoError(t, err)
}

func TestPassedStudentsRequireExactRounds(t *testing.T) {
	f := setupFixture(t)
	f.addCompany(t, models.OnCampus, "Acme", 3)
	f.record(t, models.OnCampus, "S1", "cse", "Acme", 3)
	f.record(t, models.OnCampus, "S2", "CSE", "Acme", 2)
	f.record(t, models.OnCampus, "S3", "CSE", "Acme", 4)

	passed, err := f.evaluator.PassedStudents(f.ctx, models.OnCampus, "Acme")
	require.NoError(t, err)
	require.Len(t, passed, 1)
	assert.Equal(t, "S1", passed[0].RegNumber)

	count, err := f.evaluator.PassedCountByBranch(f.ctx, models.OnCampus, "Acme", "CSE")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	unknown, err := f.evaluator.PassedStudents(f.ctx, models.OnCampus, "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestEvaluatorRequiresArguments(t *testing.T) {
	f := setupFixture(t)

	_, err := f.evaluator.PassedStudents(f.ctx, models.OnCampus, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.evaluator.PassedCountByBranch(f.ctx, models.OnCampus, "Acme", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "branch", apperrors.FieldOf(err))
}

func TestTracksStayApart(t *testing.T) {
	f := setupFixture(t)
	f.addCompany(t, models.OnCampus, "Acme", 2)
	f.addCompany(t, models.OffCampus, "Acme", 1)
	f.record(t, models.OnCampus, "S1", "IT", "Acme", 2)
	f.record(t, models.OffCampus, "S2", "IT", "Acme", 1)

	on, err := f.evaluator.PassedStudents(f.ctx, models.OnCampus, "Acme")
	require.NoError(t, err)
	off, err := f.evaluator.PassedStudents(f.ctx, models.OffCampus, "Acme")
	require.NoError(t, err)

	require.Len(t, on, 1)
	require.Len(t, off, 1)
	assert.Equal(t, "S1", on[0].RegNumber)
	assert.Equal(t, "S2", off[0].RegNumber)
}

func TestRecordProgress(t *testing.T) {
	f := setupFixture(t)

	t.Run("first missing field is reported", func(t *testing.T) {
		err := f.recorder.RecordProgress(f.ctx, models.OnCampus, &models.ProgressRecord{
			Name:    "Asha",
			Company: "Acme",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "regNumber", apperrors.FieldOf(err))
	})

	t.Run("unknown branch", func(t *testing.T) {
		err := f.recorder.RecordProgress(f.ctx, models.OnCampus, &models.ProgressRecord{
			Name: "Asha", RegNumber: "S1", Branch: "Physics", Company: "Acme", Blog: "hi",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "branch", apperrors.FieldOf(err))
	})

	t.Run("nil record", func(t *testing.T) {
		err := f.recorder.RecordProgress(f.ctx, models.OnCampus, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("identical submissions are both stored", func(t *testing.T) {
		f.addCompany(t, models.OnCampus, "Acme", 2)
		f.record(t, models.OnCampus, "S1", "CSE", "Acme", 2)
		f.record(t, models.OnCampus, "S1", "CSE", "Acme", 2)

		records, err := f.recorder.ListProgress(f.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.Len(t, records, 2)

		roster, err := f.roster.BuildTrackRoster(f.ctx, models.OnCampus)
		require.NoError(t, err)
		require.Len(t, roster, 1)
		assert.Equal(t, "S1", roster[0].RegNumber)
		assert.Equal(t, models.StatusPlaced, roster[0].Status)
	})
}

func TestBlogForCompany(t *testing.T) {
	f := setupFixture(t)

	_, err := f.recorder.BlogForCompany(f.ctx, models.OffCampus, "Acme")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	f.record(t, models.OffCampus, "S1", "EEE", "Acme", 0)
	f.record(t, models.OffCampus, "S2", "EEE", "Acme", 1)

	blog, err := f.recorder.BlogForCompany(f.ctx, models.OffCampus, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "S1 at Acme", blog)
}

func TestCatalog(t *testing.T) {
	f := setupFixture(t)
	f.addCompany(t, models.OnCampus, "Acme", 3)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rounds := 1
		_, err := f.catalog.Add(f.ctx, models.OnCampus, &models.CompanyInput{Name: " Acme ", RequiredRounds: &rounds})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("missing rounds is a validation error", func(t *testing.T) {
		_, err := f.catalog.Add(f.ctx, models.OnCampus, &models.CompanyInput{Name: "Globex"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "requiredRounds", apperrors.FieldOf(err))
	})

	t.Run("delete leaves progress behind", func(t *testing.T) {
		f.record(t, models.OnCampus, "S1", "CSE", "Acme", 3)

		deleted, err := f.catalog.Delete(f.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.True(t, deleted)

		companies, err := f.catalog.List(f.ctx, models.OnCampus)
		require.NoError(t, err)
		assert.Empty(t, companies)

		records, err := f.recorder.ListProgress(f.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.Len(t, records, 1)

		passed, err := f.evaluator.PassedStudents(f.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.Empty(t, passed)
	})

	t.Run("deleting an absent company", func(t *testing.T) {
		deleted, err := f.catalog.Delete(f.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
