package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// SQL backends understood by NewSQL.
const (
	SQLite   = "sqlite"
	MySQL    = "mysql"
	Postgres = "postgres"
)

// DriverName maps a backend to its database/sql driver name.
func DriverName(backend string) (string, error) {
	switch backend {
	case SQLite:
		return "sqlite", nil
	case MySQL:
		return "mysql", nil
	case Postgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported sql backend: %s. Must be sqlite, mysql or postgres", backend)
	}
}

// NewSQL opens and pings a database/sql pool for backend.
//
// dsn formats:
//
//	sqlite   – file path, e.g. "gitscout.db"
//	mysql    – user:password@tcp(host:port)/dbname
//	postgres – host=localhost port=5432 user=postgres dbname=gitscout
func NewSQL(ctx context.Context, backend, dsn string) (*sql.DB, error) {
	driver, err := DriverName(backend)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == SQLite {
		// One writer at a time avoids "database is locked".
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", backend, err)
	}
	return db, nil
}
