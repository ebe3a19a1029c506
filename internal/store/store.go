// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for picker state and the pick log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS picks (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			picked_at TEXT NOT NULL,
			filter TEXT NOT NULL,
			speed TEXT NOT NULL,
			no_repeat INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_picked_at ON picks(picked_at);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_name ON picks(name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// InsertPick appends a committed pick to the pick log.
func (s *Store) InsertPick(ctx context.Context, pick model.PickRecord) (int64, error) {
	noRepeat := 0
	if pick.NoRepeat {
		noRepeat = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO picks (name, category, picked_at, filter, speed, no_repeat)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		pick.Name,
		string(pick.Category),
		pick.PickedAt.UTC().Format(time.RFC3339Nano),
		pick.Filter,
		string(pick.Speed),
		noRepeat,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPickCounts returns per-hero pick counts, most picked first.
func (s *Store) ListPickCounts(ctx context.Context) ([]model.PickCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, category, COUNT(*) AS picks, MAX(picked_at) AS last_picked
		FROM picks
		GROUP BY name, category
		ORDER BY picks DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PickCount
	for rows.Next() {
		var pc model.PickCount
		var category, lastPicked string
		if err := rows.Scan(&pc.Name, &category, &pc.Count, &lastPicked); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, lastPicked)
		if err != nil {
			return nil, err
		}
		pc.Category = roster.Category(category)
		pc.LastPicked = parsed
		result = append(result, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountPicks returns the total number of logged picks.
func (s *Store) CountPicks(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM picks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
