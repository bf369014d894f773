// Package sqlite provides SQLite-backed persistence for web diagnostics.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	webstorage "github.com/mergington/activities-web/internal/web/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS failure_events (
	id         TEXT PRIMARY KEY,
	op         TEXT NOT NULL,
	target     TEXT NOT NULL DEFAULT '',
	detail     TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_failure_events_created_at ON failure_events (created_at);
`

// Store provides SQLite-backed persistence for web diagnostics data.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a diagnostics SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite db: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendFailureEvent stores one failure event.
func (s *Store) AppendFailureEvent(ctx context.Context, evt webstorage.FailureEvent) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	evt.ID = strings.TrimSpace(evt.ID)
	if evt.ID == "" {
		return fmt.Errorf("event id is required")
	}
	evt.Op = strings.TrimSpace(evt.Op)
	if evt.Op == "" {
		return fmt.Errorf("event op is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO failure_events (id, op, target, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		evt.ID,
		evt.Op,
		evt.Target,
		evt.Detail,
		evt.Timestamp.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append failure event: %w", err)
	}
	return nil
}

// RecentFailureEvents returns up to limit events, newest first.
func (s *Store) RecentFailureEvents(ctx context.Context, limit int) ([]webstorage.FailureEvent, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, op, target, detail, created_at
		 FROM failure_events
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list failure events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []webstorage.FailureEvent
	for rows.Next() {
		var evt webstorage.FailureEvent
		var createdAt int64
		if err := rows.Scan(&evt.ID, &evt.Op, &evt.Target, &evt.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan failure event: %w", err)
		}
		evt.Timestamp = unixMillisToTime(createdAt)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failure events: %w", err)
	}
	return events, nil
}
