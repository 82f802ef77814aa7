package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStorage implements Storage using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &SQLiteStorage{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// NewInMemoryStorage creates an in-memory SQLite storage (for testing)
func NewInMemoryStorage() (*SQLiteStorage, error) {
	return NewSQLiteStorage(":memory:")
}

// migrate runs database migrations
func (s *SQLiteStorage) migrate() error {
	if _, err := s.db.Exec(initialMigration); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	return nil
}

const initialMigration = `
CREATE TABLE IF NOT EXISTS selections (
    id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    hour INTEGER NOT NULL DEFAULT 0,
    minute INTEGER NOT NULL DEFAULT 0,
    second INTEGER NOT NULL DEFAULT 0,
    total_seconds INTEGER NOT NULL,
    hour_interval INTEGER NOT NULL DEFAULT 1,
    minute_interval INTEGER NOT NULL DEFAULT 1,
    second_interval INTEGER NOT NULL DEFAULT 1,
    rounding TEXT NOT NULL DEFAULT 'down',
    minimum_seconds INTEGER,
    maximum_seconds INTEGER,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_selections_mode ON selections(mode);
CREATE INDEX IF NOT EXISTS idx_selections_created_at ON selections(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_selections_total_seconds ON selections(total_seconds);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

INSERT OR IGNORE INTO schema_version (version) VALUES (1);
`

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SaveSelection stores a confirmed selection and returns its assigned ID
func (s *SQLiteStorage) SaveSelection(ctx context.Context, rec *SelectionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selections (id, mode, hour, minute, second, total_seconds,
			hour_interval, minute_interval, second_interval, rounding,
			minimum_seconds, maximum_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Mode,
		rec.Hour,
		rec.Minute,
		rec.Second,
		rec.TotalSeconds,
		rec.HourInterval,
		rec.MinuteInterval,
		rec.SecondInterval,
		rec.Rounding,
		nullableInt(rec.MinimumSeconds),
		nullableInt(rec.MaximumSeconds),
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert selection: %w", err)
	}

	return rec.ID, nil
}

// GetSelection retrieves a selection by ID
func (s *SQLiteStorage) GetSelection(ctx context.Context, id string) (*SelectionRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM selections WHERE id = ?", id)
	return scanSelection(row)
}

const selectColumns = `SELECT id, mode, hour, minute, second, total_seconds,
	hour_interval, minute_interval, second_interval, rounding,
	minimum_seconds, maximum_seconds, created_at`

// ListSelections returns selections matching the filter, newest first
func (s *SQLiteStorage) ListSelections(ctx context.Context, filter *SelectionFilter) ([]*SelectionRecord, error) {
	where, args := buildFilter(filter)

	limit := 100
	offset := 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}

	query := selectColumns + " FROM selections" + where + " ORDER BY created_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list selections: %w", err)
	}
	defer rows.Close()

	var records []*SelectionRecord
	for rows.Next() {
		rec, err := scanSelection(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountSelections returns the number of selections matching the filter
func (s *SQLiteStorage) CountSelections(ctx context.Context, filter *SelectionFilter) (int, error) {
	where, args := buildFilter(filter)

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM selections"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count selections: %w", err)
	}
	return count, nil
}

// DeleteSelection removes a selection by ID
func (s *SQLiteStorage) DeleteSelection(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM selections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetStats computes aggregate statistics over all stored selections
func (s *SQLiteStorage) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByMode: make(map[string]int)}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(total_seconds), 0),
			COALESCE(AVG(total_seconds), 0),
			COALESCE(MAX(total_seconds), 0),
			COALESCE(MIN(total_seconds), 0)
		FROM selections
	`)

	var avg float64
	if err := row.Scan(&stats.Count, &stats.TotalSeconds, &avg, &stats.LongestSeconds, &stats.ShortestSeconds); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	stats.AverageSeconds = int(avg)

	rows, err := s.db.QueryContext(ctx, "SELECT mode, COUNT(*) FROM selections GROUP BY mode")
	if err != nil {
		return nil, fmt.Errorf("failed to compute per-mode stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mode string
		var count int
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, fmt.Errorf("failed to scan mode stats: %w", err)
		}
		stats.ByMode[mode] = count
	}

	return stats, rows.Err()
}

// buildFilter converts a filter into a WHERE clause and its arguments
func buildFilter(filter *SelectionFilter) (string, []interface{}) {
	if filter == nil {
		return "", nil
	}

	var clauses []string
	var args []interface{}

	if filter.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, filter.Mode)
	}
	if filter.CreatedAfter != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.CreatedAfter.UTC().Format(time.RFC3339))
	}
	if filter.CreatedBefore != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, filter.CreatedBefore.UTC().Format(time.RFC3339))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanner abstracts sql.Row and sql.Rows for scanSelection
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSelection(row scanner) (*SelectionRecord, error) {
	var rec SelectionRecord
	var minSecs, maxSecs sql.NullInt64
	var createdAt string

	err := row.Scan(
		&rec.ID,
		&rec.Mode,
		&rec.Hour,
		&rec.Minute,
		&rec.Second,
		&rec.TotalSeconds,
		&rec.HourInterval,
		&rec.MinuteInterval,
		&rec.SecondInterval,
		&rec.Rounding,
		&minSecs,
		&maxSecs,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if minSecs.Valid {
		v := int(minSecs.Int64)
		rec.MinimumSeconds = &v
	}
	if maxSecs.Valid {
		v := int(maxSecs.Int64)
		rec.MaximumSeconds = &v
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &rec, nil
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
