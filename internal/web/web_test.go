// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/sec"
	"github.com/taibuivan/kryptotracker/internal/session"
	"github.com/taibuivan/kryptotracker/internal/web"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// app is the web frontend wired against a mock backend.
type app struct {
	t       *testing.T
	handler http.Handler
	manager *session.Manager
	signer  *sec.CookieSigner
	backend *httptest.Server
	calls   atomic.Int32
	cookie  *http.Cookie
}

func newApp(t *testing.T, backend http.HandlerFunc) *app {
	t.Helper()
	return newAppWith(t, web.Options{}, backend)
}

func newAppWith(t *testing.T, options web.Options, backend http.HandlerFunc) *app {
	t.Helper()

	a := &app{t: t}
	a.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.calls.Add(1)
		backend(w, r)
	}))
	t.Cleanup(a.backend.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	client, err := kryptoapi.New(kryptoapi.Config{
		BaseURL:    a.backend.URL,
		HTTPClient: a.backend.Client(),
		Cache:      kryptoapi.NewMemoryCache(ctx),
		Logger:     discardLogger,
	})
	require.NoError(t, err)

	a.signer, err = sec.NewCookieSigner(strings.Repeat("k", 32), constants.SessionIssuer)
	require.NoError(t, err)
	a.manager = session.NewManager(session.NewMemoryStorage(), a.signer, session.Options{
		IdleTTL:         time.Minute,
		NotificationTTL: 500 * time.Millisecond,
	}, discardLogger)

	handler, err := web.NewHandler(client, options, discardLogger)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Get("/ws/notifications", handler.Notifications)
	router.Mount("/", handler.Routes())
	a.handler = a.manager.Middleware(router)

	return a
}

// do sends one browser request, keeping the session cookie across calls.
func (a *app) do(request *http.Request) *httptest.ResponseRecorder {
	if a.cookie != nil {
		request.AddCookie(a.cookie)
	}
	recorder := httptest.NewRecorder()
	a.handler.ServeHTTP(recorder, request)

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			a.cookie = cookie
		}
	}
	return recorder
}

func (a *app) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *app) post(path string, form url.Values) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(request)
}

func (a *app) postFiles(path string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(a.t, writer.WriteField(name, value))
	}
	for name, filename := range files {
		part, err := writer.CreateFormFile(name, filename)
		require.NoError(a.t, err)
		_, _ = io.WriteString(part, "txid,asset\n")
	}
	require.NoError(a.t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, path, &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return a.do(request)
}

// store returns the session store of the browser, starting a session first
// when none exists.
func (a *app) store() *session.Store {
	if a.cookie == nil {
		a.get("/")
	}
	id, err := a.signer.Verify(a.cookie.Value)
	require.NoError(a.t, err)
	return a.manager.Store(context.Background(), id)
}

// login puts a token into the browser's session without a backend call.
func (a *app) login(token string) {
	a.store().SetToken(context.Background(), token)
	a.calls.Store(0)
}
