// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kryptotracker/internal/platform/dberr"
	"github.com/taibuivan/kryptotracker/internal/platform/postgres"
)

// PostgresStorage keeps browser state in the web_storage table.
//
// The table is created by the embedded migrations ([Migrations]).
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a [PostgresStorage] on an existing pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

// Get implements [Storage].
func (p *PostgresStorage) Get(ctx context.Context, scope, key string) (string, bool, error) {
	const query = `SELECT value FROM web_storage WHERE scope = $1 AND key = $2`

	var value string
	err := p.pool.QueryRow(ctx, query, scope, key).Scan(&value)
	if dberr.IsNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dberr.Wrap(err, "get "+key)
	}
	return value, true, nil
}

// Set implements [Storage].
func (p *PostgresStorage) Set(ctx context.Context, scope, key, value string) error {
	const query = `
		INSERT INTO web_storage (scope, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (scope, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()`

	_, err := p.pool.Exec(ctx, query, scope, key, value)
	return dberr.Wrap(err, "set "+key)
}

// Delete implements [Storage].
func (p *PostgresStorage) Delete(ctx context.Context, scope, key string) error {
	const query = `DELETE FROM web_storage WHERE scope = $1 AND key = $2`

	_, err := p.pool.Exec(ctx, query, scope, key)
	return dberr.Wrap(err, "delete "+key)
}

// Ping implements [Storage].
func (p *PostgresStorage) Ping(ctx context.Context) error {
	return postgres.Ping(ctx, p.pool)
}
