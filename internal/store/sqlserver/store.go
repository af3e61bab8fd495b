// Package sqlserver backs the store with SQL Server / Azure SQL.
package sqlserver

import (
	"fmt"
	"path/filepath"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/placement-tracker/internal/store"
)

type SQLServerStore struct {
	store.BaseStore
}

func NewSQLServerStore(config *store.DBConfig) (*SQLServerStore, error) {
	db, err := sqlx.Connect("sqlserver", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sql server: %w", err)
	}
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}

	s := &SQLServerStore{BaseStore: store.BaseStore{
		DB:        db,
		Converter: db.Rebind,
	}}

	if config.MigrationsDir != "" {
		if err := s.ApplyMigrations(config.MigrationsDir); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return s, nil
}

// ApplyMigrations reads the T-SQL variants kept in the sqlserver
// subdirectory; the Postgres files are not translatable statement by
// statement.
func (s *SQLServerStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(filepath.Join(dir, "sqlserver"), nil)
}
