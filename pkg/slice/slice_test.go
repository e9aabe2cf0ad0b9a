// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kryptotracker/pkg/slice"
)

/*
TestFilter verifies order is kept and nil stays nil.
*/
func TestFilter(t *testing.T) {
	odd := func(n int) bool { return n%2 == 1 }

	assert.Equal(t, []int{1, 3, 5}, slice.Filter([]int{1, 2, 3, 4, 5}, odd))
	assert.Empty(t, slice.Filter([]int{2, 4}, odd))
	assert.Nil(t, slice.Filter[int](nil, odd))
}
