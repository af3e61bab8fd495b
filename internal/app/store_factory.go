package app

import (
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/placement-tracker/internal/store"
	"github.com/shrimpsizemoose/placement-tracker/internal/store/postgres"
	"github.com/shrimpsizemoose/placement-tracker/internal/store/sqlite"
	"github.com/shrimpsizemoose/placement-tracker/internal/store/sqlserver"
)

func DetectDBType(dsn string) store.DatabaseType {
	switch {
	case strings.HasPrefix(dsn, "postgres"):
		return store.DBTypePostgres
	case strings.HasPrefix(dsn, "sqlserver"), strings.HasPrefix(dsn, "mssql"):
		return store.DBTypeSQLServer
	default:
		return store.DBTypeSQLite
	}
}

func NewStore(config *Config) (store.PlacementStore, error) {
	dbConfig := &store.DBConfig{
		DSN:           config.Database.DSN,
		Type:          DetectDBType(config.Database.DSN),
		MigrationsDir: config.Database.MigrationsDir,
		MaxOpenConns:  config.Database.MaxOpenConns,
	}

	switch dbConfig.Type {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(dbConfig)
	case store.DBTypeSQLServer:
		if strings.HasPrefix(dbConfig.DSN, "mssql") {
			dbConfig.DSN = "sqlserver" + strings.TrimPrefix(dbConfig.DSN, "mssql")
		}
		return sqlserver.NewSQLServerStore(dbConfig)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(dbConfig)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dbConfig.DSN)
	}
}
