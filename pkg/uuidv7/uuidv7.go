// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Browser session ids double as storage scopes in Redis, PostgreSQL and
// SQLite. Time-ordered ids keep the web_storage primary key append-mostly
// and make log lines of one session easy to place in time.
package uuidv7

import (
	"time"

	"github.com/google/uuid"
)

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// This is acceptable as OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Time returns the creation time embedded in a UUIDv7 string.
func Time(id string) (time.Time, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 7 {
		return time.Time{}, false
	}
	seconds, nanos := parsed.Time().UnixTime()
	return time.Unix(seconds, nanos), true
}
