// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/pkg/uuidv7"
)

/*
TestNew_TimeOrdered verifies ids are unique and carry their creation time.
*/
func TestNew_TimeOrdered(t *testing.T) {
	before := time.Now().Add(-time.Second)
	first, second := uuidv7.New(), uuidv7.New()

	assert.NotEqual(t, first, second)

	created, ok := uuidv7.Time(first)
	require.True(t, ok)
	assert.WithinDuration(t, before, created, 2*time.Second)
}

/*
TestTime_RejectsOtherVersions covers malformed and non-v7 ids.
*/
func TestTime_RejectsOtherVersions(t *testing.T) {
	for _, id := range []string{"", "not-a-uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"} {
		_, ok := uuidv7.Time(id)
		assert.False(t, ok, id)
	}
}
