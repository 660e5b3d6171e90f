// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/classpulse/poll"
)

// SQLStore keeps the session snapshot as a single JSON row, in sqlite for
// single-binary deployments or postgres for shared ones.
type SQLStore struct {
	db  *sql.DB
	key string
}

// OpenSQLStore opens the database, verifies the connection, and creates
// the snapshot table. dbType is "sqlite" or "postgres".
func OpenSQLStore(ctx context.Context, dbType, url, key string) (*SQLStore, error) {
	driver := "sqlite"
	if dbType == "postgres" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}
	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLStore{db: db, key: key}, nil
}

// createSchema is safe to call multiple times - uses IF NOT EXISTS.
func createSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SQLite accepts $N placeholders as well, so one statement set serves both drivers.
const schema = `
-- Session snapshots, one row per snapshot key
CREATE TABLE IF NOT EXISTS session_snapshot (
    snapshot_key TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);
`

func (s *SQLStore) Save(ctx context.Context, snap *poll.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_snapshot (snapshot_key, payload, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (snapshot_key) DO UPDATE SET payload = $2, saved_at = $3
	`, s.key, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (*poll.Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM session_snapshot WHERE snapshot_key = $1
	`, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap poll.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", poll.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
