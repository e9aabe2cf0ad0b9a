// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxutil"
	"github.com/taibuivan/kryptotracker/internal/platform/middleware"
	"github.com/taibuivan/kryptotracker/internal/platform/respond"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

/*
TestRequestID_GeneratesAndKeeps covers a fresh id and a client supplied one.
*/
func TestRequestID_GeneratesAndKeeps(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "req-42", seen)
}

/*
TestRateLimit_PerClient verifies a client is cut off after its burst while
another client still passes.
*/
func TestRateLimit_PerClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(okHandler)

	call := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	limited := call("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(limited.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeRateLimited, envelope.Code)

	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code)
}

/*
TestPanicRecovery answers 500 without leaking the panic value.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(discardLogger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("token abc123 leaked")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "abc123")
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

/*
TestCORS_Origins covers allowed, foreign and development origins.
*/
func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name   string
		cfg    corsConfig
		origin string
		want   string
	}{
		{"listed origin", corsConfig{origins: []string{"https://app.example"}}, "https://app.example", "https://app.example"},
		{"foreign origin", corsConfig{origins: []string{"https://app.example"}}, "https://evil.example", ""},
		{"development", corsConfig{development: true}, "http://localhost:5173", "http://localhost:5173"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, recorder.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
