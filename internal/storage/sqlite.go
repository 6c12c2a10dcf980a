package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS saves (
	profile    TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	version    INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps one snapshot row per profile in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// saves table exists. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// Each :memory: connection is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}

	slog.InfoContext(ctx, "sqlite store opened", "path", path)
	return &SQLiteStore{db: db, path: path}, nil
}

// Load returns the snapshot saved for profile, or ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, profile string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE profile = ?`, profile).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", profile, err)
	}
	return []byte(data), nil
}

// Save upserts the snapshot for profile.
func (s *SQLiteStore) Save(ctx context.Context, profile string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (profile, data, version, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			data = excluded.data,
			version = excluded.version,
			updated_at = excluded.updated_at`,
		profile, string(data), snapshotVersion(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save %s: %w", profile, err)
	}
	return nil
}

// UpdatedAt returns when profile was last saved.
func (s *SQLiteStore) UpdatedAt(ctx context.Context, profile string) (time.Time, error) {
	var ms int64
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM saves WHERE profile = ?`, profile).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("updated_at %s: %w", profile, err)
	}
	return time.UnixMilli(ms), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// snapshotVersion reads the version field for the indexed column; anything
// unreadable is stored as 0.
func snapshotVersion(data []byte) int {
	var v struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return 0
	}
	return v.Version
}
