// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Both SQL storage backends (pgx and database/sql over SQLite) report a
// missing row differently; callers only ask [IsNoRows].
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// IsNoRows reports whether err means the queried row does not exist.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// Wrap annotates a database error with the action that failed.
//
// The result is logged by the storage callers, never shown to the user, so
// it keeps the driver error intact for diagnosis.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("storage: %s: %w", action, err)
}
