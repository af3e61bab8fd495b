package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type PlacementStore interface {
	Close() error
	Ping(ctx context.Context) error
	ApplyMigrations(dir string) error

	ListCompanies(ctx context.Context, track models.Track) ([]models.Company, error)
	GetCompany(ctx context.Context, track models.Track, name string) (*models.Company, error)
	CreateCompany(ctx context.Context, track models.Track, company models.Company) error
	DeleteCompany(ctx context.Context, track models.Track, name string) (bool, error)

	CreateProgress(ctx context.Context, track models.Track, record *models.ProgressRecord) error
	ListProgress(ctx context.Context, track models.Track, company string) ([]models.ProgressRecord, error)
	GetFirstBlog(ctx context.Context, track models.Track, company string) (*string, error)
	FetchPassedStudents(ctx context.Context, track models.Track, company string) ([]models.PassedStudent, error)
	CountPassedByBranch(ctx context.Context, track models.Track, company, branch string) (int, error)

	GetResumeSummary(ctx context.Context, regNumber string) (*models.ResumeSummary, error)
	SaveResumeSummary(ctx context.Context, regNumber, summary string) (bool, error)

	GetCredential(ctx context.Context, role models.Role, id string) (*models.Credential, error)
	SaveCredential(ctx context.Context, role models.Role, id, password string) error
}

// BaseStore provides common functionality for different DB implementations.
// Queries are written with ? placeholders and passed through Converter.
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStorageUnavailable, err)
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *BaseStore) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return storageError("ping", err)
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory in file name
// order, translating dialect if needed.
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) ListCompanies(ctx context.Context, track models.Track) ([]models.Company, error) {
	t, err := tablesFor(track)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s AS name, %s AS required_rounds
		FROM %s
		ORDER BY %s
	`, t.CompanyName, t.CompanyRounds, t.Companies, t.CompanyName)

	companies := []models.Company{}
	if err := s.DB.SelectContext(ctx, &companies, s.Converter(query)); err != nil {
		return nil, storageError("failed to list companies", err)
	}
	return companies, nil
}

func (s *BaseStore) GetCompany(ctx context.Context, track models.Track, name string) (*models.Company, error) {
	t, err := tablesFor(track)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s AS name, %s AS required_rounds
		FROM %s
		WHERE %s = ?
	`, t.CompanyName, t.CompanyRounds, t.Companies, t.CompanyName)

	var company models.Company
	err = s.DB.GetContext(ctx, &company, s.Converter(query), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("failed to get company", err)
	}
	return &company, nil
}

func (s *BaseStore) CreateCompany(ctx context.Context, track models.Track, company models.Company) error {
	t, err := tablesFor(track)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?)`,
		t.Companies, t.CompanyName, t.CompanyRounds)

	if _, err := s.DB.ExecContext(ctx, s.Converter(query), company.Name, company.RequiredRounds); err != nil {
		return storageError("failed to create company", err)
	}
	return nil
}

// DeleteCompany removes the company row only. Progress rows that
// reference it by name are left in place.
func (s *BaseStore) DeleteCompany(ctx context.Context, track models.Track, name string) (bool, error) {
	t, err := tablesFor(track)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, t.Companies, t.CompanyName)
	res, err := s.DB.ExecContext(ctx, s.Converter(query), name)
	if err != nil {
		return false, storageError("failed to delete company", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageError("failed to delete company", err)
	}
	return n > 0, nil
}

func (s *BaseStore) CreateProgress(ctx context.Context, track models.Track, record *models.ProgressRecord) error {
	t, err := tablesFor(track)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.Progress, t.StudentName, t.RegNumber, t.Branch, t.ProgressName, t.RoundsCleared, t.Blog)

	_, err = s.DB.ExecContext(ctx, s.Converter(query),
		record.Name,
		record.RegNumber,
		record.Branch,
		record.Company,
		record.RoundsCleared,
		record.Blog,
	)
	if err != nil {
		return storageError("failed to create progress record", err)
	}
	return nil
}

func (s *BaseStore) ListProgress(ctx context.Context, track models.Track, company string) ([]models.ProgressRecord, error) {
	t, err := tablesFor(track)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			id,
			%s AS name,
			%s AS reg_number,
			%s AS branch,
			%s AS company,
			%s AS rounds_cleared,
			%s AS blog
		FROM %s
		WHERE %s = ?
		ORDER BY id
	`, t.StudentName, t.RegNumber, t.Branch, t.ProgressName, t.RoundsCleared, t.Blog,
		t.Progress, t.ProgressName)

	records := []models.ProgressRecord{}
	if err := s.DB.SelectContext(ctx, &records, s.Converter(query), company); err != nil {
		return nil, storageError("failed to list progress", err)
	}
	return records, nil
}

// GetFirstBlog returns the earliest stored blog for company, or nil.
func (s *BaseStore) GetFirstBlog(ctx context.Context, track models.Track, company string) (*string, error) {
	t, err := tablesFor(track)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = ?
		ORDER BY id
	`, t.Blog, t.Progress, t.ProgressName)

	var blog string
	err = s.DB.GetContext(ctx, &blog, s.Converter(query), company)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("failed to get blog", err)
	}
	return &blog, nil
}

// FetchPassedStudents returns progress rows whose rounds cleared equal the
// company's required rounds. An unknown company yields no rows because the
// subquery is NULL.
func (s *BaseStore) FetchPassedStudents(ctx context.Context, track models.Track, company string) ([]models.PassedStudent, error) {
	t, err := tablesFor(track)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			p.%s AS name,
			p.%s AS reg_number,
			p.%s AS branch
		FROM %s p
		WHERE p.%s = ?
		AND p.%s = (
			SELECT c.%s FROM %s c WHERE c.%s = ?
		)
		ORDER BY p.id
	`, t.StudentName, t.RegNumber, t.Branch,
		t.Progress,
		t.ProgressName,
		t.RoundsCleared,
		t.CompanyRounds, t.Companies, t.CompanyName)

	students := []models.PassedStudent{}
	if err := s.DB.SelectContext(ctx, &students, s.Converter(query), company, company); err != nil {
		return nil, storageError("failed to fetch passed students", err)
	}
	return students, nil
}

func (s *BaseStore) CountPassedByBranch(ctx context.Context, track models.Track, company, branch string) (int, error) {
	t, err := tablesFor(track)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s p
		WHERE p.%s = ?
		AND LOWER(p.%s) = LOWER(?)
		AND p.%s = (
			SELECT c.%s FROM %s c WHERE c.%s = ?
		)
	`, t.Progress,
		t.ProgressName,
		t.Branch,
		t.RoundsCleared,
		t.CompanyRounds, t.Companies, t.CompanyName)

	var count int
	if err := s.DB.GetContext(ctx, &count, s.Converter(query), company, branch, company); err != nil {
		return 0, storageError("failed to count passed students", err)
	}
	return count, nil
}

func (s *BaseStore) GetResumeSummary(ctx context.Context, regNumber string) (*models.ResumeSummary, error) {
	query := s.Converter(`
		SELECT srno AS reg_number, summary
		FROM student_resumes
		WHERE srno = ?
		ORDER BY id
	`)

	var summary models.ResumeSummary
	err := s.DB.GetContext(ctx, &summary, query, regNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("failed to get resume summary", err)
	}
	return &summary, nil
}

// SaveResumeSummary overwrites the summary for regNumber in place, or
// inserts it when none exists. It reports whether a row was created.
func (s *BaseStore) SaveResumeSummary(ctx context.Context, regNumber, summary string) (bool, error) {
	created, err := s.updateOrInsert(ctx,
		`UPDATE student_resumes SET summary = ?, updated_at = CURRENT_TIMESTAMP WHERE srno = ?`,
		[]any{summary, regNumber},
		`INSERT INTO student_resumes (srno, resume_url, summary) VALUES (?, '', ?)`,
		[]any{regNumber, summary},
	)
	if err != nil {
		return false, storageError("failed to save resume summary", err)
	}
	return created, nil
}

func (s *BaseStore) GetCredential(ctx context.Context, role models.Role, id string) (*models.Credential, error) {
	t, err := credentialsFor(role)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s AS id, %s AS password FROM %s WHERE %s = ?`,
		t.ID, t.Password, t.Table, t.ID)

	var cred models.Credential
	err = s.DB.GetContext(ctx, &cred, s.Converter(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("failed to get credential", err)
	}
	return &cred, nil
}

func (s *BaseStore) SaveCredential(ctx context.Context, role models.Role, id, password string) error {
	t, err := credentialsFor(role)
	if err != nil {
		return err
	}

	_, err = s.updateOrInsert(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`, t.Table, t.Password, t.ID),
		[]any{password, id},
		fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?)`, t.Table, t.ID, t.Password),
		[]any{id, password},
	)
	if err != nil {
		return storageError("failed to save credential", err)
	}
	return nil
}

// updateOrInsert runs the update and falls back to the insert when no row
// matched, inside one transaction. Works on every supported dialect.
func (s *BaseStore) updateOrInsert(ctx context.Context, update string, updateArgs []any, insert string, insertArgs []any) (bool, error) {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.Converter(update), updateArgs...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	created := false
	if n == 0 {
		if _, err := tx.ExecContext(ctx, s.Converter(insert), insertArgs...); err != nil {
			return false, err
		}
		created = true
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return created, nil
}
