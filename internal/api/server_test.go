// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/api"
	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/config"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/sec"
	"github.com/taibuivan/kryptotracker/internal/session"
	"github.com/taibuivan/kryptotracker/internal/web"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newServer(t *testing.T, checks ...api.Check) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}

	client, err := kryptoapi.New(kryptoapi.Config{BaseURL: backend.URL, Logger: discardLogger})
	require.NoError(t, err)

	signer, err := sec.NewCookieSigner(strings.Repeat("k", 32), constants.SessionIssuer)
	require.NoError(t, err)
	manager := session.NewManager(session.NewMemoryStorage(), signer, session.Options{IdleTTL: time.Minute}, discardLogger)

	pages, err := web.NewHandler(client, web.Options{}, discardLogger)
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(checks, discardLogger)
	server := api.NewServer(ctx, cfg, discardLogger, manager, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Web:       pages,
	})
	return server.Handler()
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

/*
TestHealth_Liveness verifies the probe answers without a session cookie.
*/
func TestHealth_Liveness(t *testing.T) {
	recorder := serve(newServer(t), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestHealth_Readiness covers the ready and degraded outcomes.
*/
func TestHealth_Readiness(t *testing.T) {
	healthy := api.Check{Name: "storage", Ping: func(context.Context) error { return nil }}
	broken := api.Check{Name: "cache", Ping: func(context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name       string
		checks     []api.Check
		wantStatus int
		wantState  string
	}{
		{"no checks", nil, http.StatusOK, "ready"},
		{"all healthy", []api.Check{healthy}, http.StatusOK, "ready"},
		{"one broken", []api.Check{healthy, broken}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(newServer(t, tt.checks...), http.MethodGet, "/ready")
			require.Equal(t, tt.wantStatus, recorder.Code)

			var body struct {
				Data struct {
					Status string `json:"status"`
					Checks []struct {
						Name string `json:"name"`
						OK   bool   `json:"ok"`
					} `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.wantState, body.Data.Status)
			assert.Len(t, body.Data.Checks, len(tt.checks))
		})
	}
}

/*
TestServer_PagesCarrySession verifies that page routes issue the session cookie.
*/
func TestServer_PagesCarrySession(t *testing.T) {
	recorder := serve(newServer(t), http.MethodGet, "/")

	require.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

/*
TestServer_UnknownPage renders the not-found page.
*/
func TestServer_UnknownPage(t *testing.T) {
	recorder := serve(newServer(t), http.MethodGet, "/does/not/exist")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestServer_GuardedPage redirects a guest to the landing page.
*/
func TestServer_GuardedPage(t *testing.T) {
	recorder := serve(newServer(t), http.MethodGet, constants.RouteDashboard)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, constants.RouteLanding, recorder.Header().Get("Location"))
}
