// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kryptotracker/internal/platform/dberr"
)

/*
TestIsNoRows recognises both drivers' sentinel errors, wrapped or not.
*/
func TestIsNoRows(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pgx", pgx.ErrNoRows, true},
		{"database_sql", sql.ErrNoRows, true},
		{"wrapped", fmt.Errorf("get: %w", sql.ErrNoRows), true},
		{"other", errors.New("connection reset"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dberr.IsNoRows(tt.err))
		})
	}
}

/*
TestWrap keeps the cause reachable.
*/
func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := dberr.Wrap(cause, "set ACCESS_TOKEN")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "set ACCESS_TOKEN")
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}
