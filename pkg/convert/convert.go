// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions of form values.

Select boxes post ids as strings. A missing or garbled id becomes 0, which the
backend rejects with a field message of its own, so the form never needs a
second parse error path.

Do not use this package where a malformed value must be told apart from zero.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}
