// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kryptotracker/internal/platform/migration"
)

/*
TestConvertToPgx5DSN rewrites the URL schemes golang-migrate does not know.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/kt", "pgx5://u:p@db:5432/kt"},
		{"postgresql://u:p@db/kt?sslmode=disable", "pgx5://u:p@db/kt?sslmode=disable"},
		{"pgx5://u@db/kt", "pgx5://u@db/kt"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ConvertToPgx5DSN(tt.in))
		})
	}
}
