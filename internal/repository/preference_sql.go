package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/ahmednasr/gitscout/internal/database"
)

// DefaultTable is the preferences table name.
const DefaultTable = "gitscout_preferences"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// SQLStore keeps preferences in one table of a sqlite, mysql or postgres database.
type SQLStore struct {
	db      *sql.DB
	table   string
	backend string
}

var _ PreferenceStore = (*SQLStore)(nil)

// NewSQLStore creates the table if needed. The store takes ownership of db.
func NewSQLStore(ctx context.Context, db *sql.DB, backend, table string) (*SQLStore, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if _, err := database.DriverName(backend); err != nil {
		return nil, err
	}

	s := &SQLStore{db: db, table: table, backend: backend}
	if _, err := db.ExecContext(ctx, s.createTableQuery()); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return s, nil
}

func (s *SQLStore) Load(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`SELECT pref_value FROM %s WHERE pref_key = %s`, s.table, s.placeholder(1))
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Save(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.upsertQuery(), key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) createTableQuery() string {
	switch s.backend {
	case database.MySQL:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				pref_key VARCHAR(255) PRIMARY KEY,
				pref_value TEXT NOT NULL
			)`, s.table)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				pref_key TEXT PRIMARY KEY,
				pref_value TEXT NOT NULL
			)`, s.table)
	}
}

func (s *SQLStore) placeholder(n int) string {
	if s.backend == database.Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQLStore) upsertQuery() string {
	switch s.backend {
	case database.MySQL:
		return fmt.Sprintf(`INSERT INTO %s (pref_key, pref_value) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE pref_value = VALUES(pref_value)`, s.table)
	case database.Postgres:
		return fmt.Sprintf(`INSERT INTO %s (pref_key, pref_value) VALUES ($1, $2)
			ON CONFLICT (pref_key) DO UPDATE SET pref_value = EXCLUDED.pref_value`, s.table)
	default: // SQLite
		return fmt.Sprintf(`INSERT INTO %s (pref_key, pref_value) VALUES (?, ?)
			ON CONFLICT (pref_key) DO UPDATE SET pref_value = excluded.pref_value`, s.table)
	}
}
