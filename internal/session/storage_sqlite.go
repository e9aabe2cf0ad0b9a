// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"database/sql"
	"fmt"

	// Pure-Go SQLite driver, registers "sqlite".
	_ "modernc.org/sqlite"

	"github.com/taibuivan/kryptotracker/internal/platform/dberr"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS web_storage (
	scope      TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (scope, key)
)`

// SQLiteStorage keeps browser state in a local SQLite file.
//
// It suits single-node installs that want restarts to keep users logged in
// without running Redis or PostgreSQL.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLiteStorage opens (or creates) the database at path and ensures the
// web_storage table exists. Use ":memory:" for a throwaway database.
func OpenSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	// SQLite serialises writers; one connection avoids SQLITE_BUSY and keeps
	// ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"}
	for _, pragma := range append(pragmas, sqliteSchema) {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: init: %w", err)
		}
	}

	return &SQLiteStorage{db: db}, nil
}

// Close releases the database file.
func (s *SQLiteStorage) Close() error { return s.db.Close() }

// Get implements [Storage].
func (s *SQLiteStorage) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM web_storage WHERE scope = ? AND key = ?`, scope, key).Scan(&value)
	if dberr.IsNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dberr.Wrap(err, "get "+key)
	}
	return value, true, nil
}

// Set implements [Storage].
func (s *SQLiteStorage) Set(ctx context.Context, scope, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO web_storage (scope, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (scope, key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, scope, key, value)
	return dberr.Wrap(err, "set "+key)
}

// Delete implements [Storage].
func (s *SQLiteStorage) Delete(ctx context.Context, scope, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM web_storage WHERE scope = ? AND key = ?`, scope, key)
	return dberr.Wrap(err, "delete "+key)
}

// Ping implements [Storage].
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
