// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/sec"
	"github.com/taibuivan/kryptotracker/internal/session"
)

func newTestManager(t *testing.T, storage session.Storage) *session.Manager {
	t.Helper()
	signer, err := sec.NewCookieSigner(strings.Repeat("s", 32), constants.SessionIssuer)
	require.NoError(t, err)
	return session.NewManager(storage, signer, session.Options{
		IdleTTL:         time.Minute,
		NotificationTTL: time.Second,
	}, discardLogger)
}

// serve runs one request through the middleware and returns the store the
// handler saw plus the response.
func serve(manager *session.Manager, cookie *http.Cookie) (*session.Store, *httptest.ResponseRecorder) {
	var seen *session.Store
	handler := manager.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = session.FromContext(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return seen, recorder
}

func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}

/*
TestManager_Middleware issues a cookie once and keeps one store per browser.
*/
func TestManager_Middleware(t *testing.T) {
	manager := newTestManager(t, session.NewMemoryStorage())

	first, recorder := serve(manager, nil)
	require.NotNil(t, first)

	cookie := sessionCookie(recorder)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	// 1. Same cookie, same store, no new cookie
	second, recorder := serve(manager, cookie)
	assert.Same(t, first, second)
	assert.Nil(t, sessionCookie(recorder))

	// 2. Forged cookie starts a new session
	third, recorder := serve(manager, &http.Cookie{Name: constants.SessionCookieName, Value: "forged"})
	assert.NotSame(t, first, third)
	assert.NotNil(t, sessionCookie(recorder))

	assert.Equal(t, 2, manager.Len())
}

/*
TestManager_ConcurrentFirstRequests share a single store.
*/
func TestManager_ConcurrentFirstRequests(t *testing.T) {
	manager := newTestManager(t, session.NewMemoryStorage())

	stores := make([]*session.Store, 16)
	var wg sync.WaitGroup
	for i := range stores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stores[i] = manager.Store(context.Background(), "browser")
		}()
	}
	wg.Wait()

	for _, store := range stores {
		assert.Same(t, stores[0], store)
	}
}

/*
TestManager_SweepRehydrates evicts idle stores without losing the token.
*/
func TestManager_SweepRehydrates(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, session.NewMemoryStorage())

	store := manager.Store(ctx, "browser")
	store.SetToken(ctx, "abc123")

	// Nothing is idle yet
	assert.Zero(t, manager.Sweep(time.Now()))
	assert.Equal(t, 1, manager.Len())

	assert.Equal(t, 1, manager.Sweep(time.Now().Add(2*time.Minute)))
	assert.Zero(t, manager.Len())

	fresh := manager.Store(ctx, "browser")
	assert.NotSame(t, store, fresh)
	assert.Equal(t, "abc123", fresh.Token())
}

/*
TestManager_SweepKeepsSubscribed leaves a store alone while a notification
stream is attached, however long since its last request.
*/
func TestManager_SweepKeepsSubscribed(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, session.NewMemoryStorage())

	store := manager.Store(ctx, "browser")
	updates, cancel := store.Subscribe()

	later := time.Now().Add(2 * time.Minute)
	assert.Zero(t, manager.Sweep(later))
	assert.Equal(t, 1, manager.Len())

	store.SetNotification("Gespeichert")
	assert.Equal(t, "Gespeichert", <-updates)

	cancel()
	assert.Equal(t, 1, manager.Sweep(later))
	assert.Zero(t, manager.Len())
}

/*
TestManager_RunStops returns once the root context is cancelled.
*/
func TestManager_RunStops(t *testing.T) {
	manager := newTestManager(t, session.NewMemoryStorage())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		manager.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	assert.NoError(t, manager.Ping(context.Background()))
}
