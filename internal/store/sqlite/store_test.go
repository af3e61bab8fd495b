package sqlite

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
	"github.com/shrimpsizemoose/placement-tracker/internal/store"
)

// setupTestDB creates an in-memory SQLite database through the real migrations
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(&store.DBConfig{
		DSN:           ":memory:",
		Type:          store.DBTypeSQLite,
		MigrationsDir: "../../../migrations",
	})
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	}

	return s, cleanup
}

type testData struct {
	store *SQLiteStore
	ctx   context.Context
}

func setupTestData(t *testing.T) (*testData, func()) {
	s, cleanup := setupTestDB(t)
	ctx := context.Background()

	_, err := s.DB.Exec(`
		INSERT INTO companies (cname, trounds) VALUES
		('Acme', 3),
		('Initech', 2);
		INSERT INTO ofcompanies (ocname, otrounds) VALUES
		('Acme', 1);`)
	require.NoError(t, err, "Failed to insert test data")

	return &testData{
		store: s,
		ctx:   ctx,
	}, cleanup
}

func progress(reg, branch, company string, rounds int) *models.ProgressRecord {
	return &models.ProgressRecord{
		Name:          "student " + reg,
		RegNumber:     reg,
		Branch:        branch,
		Company:       company,
		RoundsCleared: rounds,
		Blog:          "blog by " + reg,
	}
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
	os.Exit(code)
}

func TestCompanyOperations(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	t.Run("list companies", func(t *testing.T) {
		companies, err := td.store.ListCompanies(td.ctx, models.OnCampus)
		require.NoError(t, err)
		assert.Equal(t, []models.Company{
			{Name: "Acme", RequiredRounds: 3},
			{Name: "Initech", RequiredRounds: 2},
		}, companies)
	})

	t.Run("tracks do not share companies", func(t *testing.T) {
		companies, err := td.store.ListCompanies(td.ctx, models.OffCampus)
		require.NoError(t, err)
		assert.Equal(t, []models.Company{{Name: "Acme", RequiredRounds: 1}}, companies)
	})

	t.Run("create and get", func(t *testing.T) {
		err := td.store.CreateCompany(td.ctx, models.OffCampus, models.Company{Name: "Globex", RequiredRounds: 4})
		require.NoError(t, err)

		got, err := td.store.GetCompany(td.ctx, models.OffCampus, "Globex")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 4, got.RequiredRounds)

		missing, err := td.store.GetCompany(td.ctx, models.OnCampus, "Globex")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate name is a storage error", func(t *testing.T) {
		err := td.store.CreateCompany(td.ctx, models.OnCampus, models.Company{Name: "Acme", RequiredRounds: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := td.store.DeleteCompany(td.ctx, models.OnCampus, "Initech")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = td.store.DeleteCompany(td.ctx, models.OnCampus, "Initech")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestPassedStudents(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	for _, p := range []*models.ProgressRecord{
		progress("S1", "cse", "Acme", 3),
		progress("S2", "CSE", "Acme", 2),
		progress("S3", "IT", "Acme", 4),
		progress("S4", "IT", "Acme", 3),
		progress("S5", "CSE", "Initech", 2),
	} {
		require.NoError(t, td.store.CreateProgress(td.ctx, models.OnCampus, p))
	}

	t.Run("only exact round count passes", func(t *testing.T) {
		students, err := td.store.FetchPassedStudents(td.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.Equal(t, []models.PassedStudent{
			{Name: "student S1", RegNumber: "S1", Branch: "cse"},
			{Name: "student S4", RegNumber: "S4", Branch: "IT"},
		}, students)
	})

	t.Run("unknown company is empty, not an error", func(t *testing.T) {
		students, err := td.store.FetchPassedStudents(td.ctx, models.OnCampus, "Nowhere")
		require.NoError(t, err)
		assert.Empty(t, students)
	})

	t.Run("other track does not see the rows", func(t *testing.T) {
		students, err := td.store.FetchPassedStudents(td.ctx, models.OffCampus, "Acme")
		require.NoError(t, err)
		assert.Empty(t, students)
	})

	t.Run("branch count ignores case", func(t *testing.T) {
		count, err := td.store.CountPassedByBranch(td.ctx, models.OnCampus, "Acme", "CSE")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = td.store.CountPassedByBranch(td.ctx, models.OnCampus, "Acme", "it")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("deleting the company orphans its rows", func(t *testing.T) {
		_, err := td.store.DeleteCompany(td.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)

		records, err := td.store.ListProgress(td.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.Len(t, records, 4)

		students, err := td.store.FetchPassedStudents(td.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.Empty(t, students)
	})
}

func TestProgressIsAppendOnly(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	p := progress("S1", "CSE", "Acme", 3)
	require.NoError(t, td.store.CreateProgress(td.ctx, models.OffCampus, p))
	require.NoError(t, td.store.CreateProgress(td.ctx, models.OffCampus, p))

	records, err := td.store.ListProgress(td.ctx, models.OffCampus, "Acme")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Less(t, records[0].ID, records[1].ID)
	assert.Equal(t, "blog by S1", records[0].Blog)
}

func TestFirstBlog(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	t.Run("no blog", func(t *testing.T) {
		blog, err := td.store.GetFirstBlog(td.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		assert.Nil(t, blog)
	})

	t.Run("earliest blog wins", func(t *testing.T) {
		require.NoError(t, td.store.CreateProgress(td.ctx, models.OnCampus, progress("S1", "CSE", "Acme", 1)))
		require.NoError(t, td.store.CreateProgress(td.ctx, models.OnCampus, progress("S2", "CSE", "Acme", 3)))

		blog, err := td.store.GetFirstBlog(td.ctx, models.OnCampus, "Acme")
		require.NoError(t, err)
		require.NotNil(t, blog)
		assert.Equal(t, "blog by S1", *blog)
	})
}

func TestResumeSummaryOperations(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	t.Run("missing summary", func(t *testing.T) {
		got, err := td.store.GetResumeSummary(td.ctx, "S1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("first save inserts", func(t *testing.T) {
		created, err := td.store.SaveResumeSummary(td.ctx, "S1", "first summary")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("second save overwrites", func(t *testing.T) {
		created, err := td.store.SaveResumeSummary(td.ctx, "S1", "second summary")
		require.NoError(t, err)
		assert.False(t, created)

		got, err := td.store.GetResumeSummary(td.ctx, "S1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "second summary", got.Summary)

		var rows int
		require.NoError(t, td.store.DB.Get(&rows, `SELECT COUNT(*) FROM student_resumes WHERE srno = 'S1'`))
		assert.Equal(t, 1, rows)
	})
}

func TestCredentialOperations(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	require.NoError(t, td.store.SaveCredential(td.ctx, models.RoleAdmin, "root", "pw1"))
	require.NoError(t, td.store.SaveCredential(td.ctx, models.RoleAdmin, "root", "pw2"))

	got, err := td.store.GetCredential(td.ctx, models.RoleAdmin, "root")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pw2", got.Password)

	other, err := td.store.GetCredential(td.ctx, models.RoleStudent, "root")
	require.NoError(t, err)
	assert.Nil(t, other)
}
