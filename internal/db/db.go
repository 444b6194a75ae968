// Package db provides the durable application log.
// PostgreSQL (pgx) is the primary backend; Redis is available as an alternative.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/job-autoapply/internal/types"
)

// ApplicationLog is the storage contract shared by all backends.
type ApplicationLog interface {
	Initialize(ctx context.Context) error
	Exists(ctx context.Context, vacancyID string) (bool, error)
	Append(ctx context.Context, entry *types.ApplicationLogEntry) error
	List(ctx context.Context, limit int) ([]types.ApplicationLogEntry, error)
	SeedDemo(ctx context.Context) error
	Close()
}

// Open connects to the backend selected by the URL scheme.
func Open(ctx context.Context, databaseURL string) (ApplicationLog, error) {
	switch {
	case strings.HasPrefix(databaseURL, "redis://"), strings.HasPrefix(databaseURL, "rediss://"):
		return ConnectRedis(ctx, databaseURL)
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Connect(ctx, databaseURL)
	case databaseURL == "":
		return nil, fmt.Errorf("database URL is required")
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %s", databaseURL)
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	run_id UUID,
	vacancy_id TEXT NOT NULL,
	profile_name TEXT NOT NULL,
	status TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL,
	cover_letter_snippet TEXT,
	raw_response TEXT
);
CREATE INDEX IF NOT EXISTS idx_applications_vacancy_id ON applications (vacancy_id);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Initialize creates the applications table if it does not exist.
func (db *DB) Initialize(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Exists reports whether any entry, of any status, has the vacancy id.
func (db *DB) Exists(ctx context.Context, vacancyID string) (bool, error) {
	var one int
	err := db.pool.QueryRow(ctx,
		`SELECT 1 FROM applications WHERE vacancy_id = $1 LIMIT 1`,
		vacancyID,
	).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check vacancy %s: %w", vacancyID, err)
	}
	return true, nil
}

// Append writes one entry. Missing ids and timestamps are filled in.
func (db *DB) Append(ctx context.Context, entry *types.ApplicationLogEntry) error {
	prepareEntry(entry)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO applications (id, run_id, vacancy_id, profile_name, status, applied_at, cover_letter_snippet, raw_response)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, nullableUUID(entry.RunID), entry.VacancyID, entry.ProfileName, entry.Status,
		entry.AppliedAt, entry.CoverLetterSnippet, entry.RawResponse,
	)
	if err != nil {
		return fmt.Errorf("failed to append application for vacancy %s: %w", entry.VacancyID, err)
	}
	return nil
}

// List returns entries newest first. A non-positive limit returns everything.
func (db *DB) List(ctx context.Context, limit int) ([]types.ApplicationLogEntry, error) {
	query := `SELECT id, run_id, vacancy_id, profile_name, status, applied_at, cover_letter_snippet, raw_response
		 FROM applications ORDER BY applied_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var entries []types.ApplicationLogEntry
	for rows.Next() {
		var e types.ApplicationLogEntry
		var runID *uuid.UUID
		if err := rows.Scan(&e.ID, &runID, &e.VacancyID, &e.ProfileName, &e.Status,
			&e.AppliedAt, &e.CoverLetterSnippet, &e.RawResponse); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if runID != nil {
			e.RunID = *runID
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SeedDemo inserts the demo rows unless they are already present.
func (db *DB) SeedDemo(ctx context.Context) error {
	for _, entry := range DemoEntries() {
		exists, err := db.Exists(ctx, entry.VacancyID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := db.Append(ctx, &entry); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return nil
}

func prepareEntry(entry *types.ApplicationLogEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = time.Now().UTC()
	}
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
