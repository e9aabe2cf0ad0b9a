// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
)

/*
TestAppError_Messages verifies that details are returned in their original order.
*/
func TestAppError_Messages(t *testing.T) {
	err := apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "username", Message: "Username vergeben."},
		apperr.FieldError{Field: "email", Message: "E-Mail ungültig."},
	)

	assert.Equal(t, []string{"Username vergeben.", "E-Mail ungültig."}, err.Messages())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

/*
TestAppError_MessagesWithoutDetails falls back to the summary message.
*/
func TestAppError_MessagesWithoutDetails(t *testing.T) {
	err := apperr.Rejected("duplicate")
	assert.Equal(t, []string{"duplicate"}, err.Messages())
	assert.Equal(t, apperr.CodeRejected, err.Code)
}

/*
TestAs_WrappedChain checks that wrapped AppErrors are still discoverable.
*/
func TestAs_WrappedChain(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("dashboard: %w", apperr.NetworkError("offline", cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNetwork, ae.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeNetwork))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeServer))
	assert.Nil(t, apperr.As(cause))
}
