// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxkey"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxutil"
	"github.com/taibuivan/kryptotracker/internal/platform/sec"
	"github.com/taibuivan/kryptotracker/pkg/uuidv7"
)

// Options configures a [Manager].
type Options struct {
	// IdleTTL is how long a store may go unused before it is evicted.
	IdleTTL time.Duration

	// NotificationTTL is passed to every [Store].
	NotificationTTL time.Duration

	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool
}

type entry struct {
	ready    chan struct{}
	store    *Store
	lastSeen atomic.Int64
}

func (e *entry) touch(now time.Time) { e.lastSeen.Store(now.UnixNano()) }

func (e *entry) hydrated() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// Manager maps browser session cookies to their single [Store].
type Manager struct {
	storage Storage
	signer  *sec.CookieSigner
	options Options
	logger  *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// NewManager creates a [Manager]. Call [Manager.Run] to start evicting idle
// stores.
func NewManager(storage Storage, signer *sec.CookieSigner, options Options, logger *slog.Logger) *Manager {
	if options.IdleTTL <= 0 {
		options.IdleTTL = 30 * time.Minute
	}
	return &Manager{
		storage: storage,
		signer:  signer,
		options: options,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Store returns the store of session id, creating and hydrating it on first
// use. Concurrent first requests of one browser share the same store.
func (m *Manager) Store(ctx context.Context, id string) *Store {
	m.mu.Lock()
	current, found := m.entries[id]
	if !found {
		current = &entry{ready: make(chan struct{})}
		m.entries[id] = current
	}
	current.touch(time.Now())
	m.mu.Unlock()

	if !found {
		// Other requests of this browser wait on the result; one cancelled
		// request must not hydrate the shared store as logged out.
		hydrateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		current.store = NewStore(hydrateCtx, id, m.storage, m.options.NotificationTTL, m.logger)
		cancel()
		close(current.ready)

		if created, ok := uuidv7.Time(id); ok {
			m.logger.DebugContext(ctx, "session_hydrated",
				slog.String("session_id", shortID(id)),
				slog.Duration("age", time.Since(created)),
			)
		}
		return current.store
	}

	<-current.ready
	return current.store
}

// Len returns the number of stores held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep evicts every store idle since before now minus IdleTTL and returns
// how many were evicted. A store with a live subscription is never idle.
func (m *Manager) Sweep(now time.Time) int {
	deadline := now.Add(-m.options.IdleTTL).UnixNano()

	m.mu.Lock()
	var evicted []*Store
	for id, current := range m.entries {
		if current.hydrated() && current.lastSeen.Load() < deadline && !current.store.Subscribed() {
			delete(m.entries, id)
			evicted = append(evicted, current.store)
		}
	}
	m.mu.Unlock()

	for _, store := range evicted {
		store.Close()
	}
	return len(evicted)
}

// Run evicts idle stores until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(constants.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			if evicted := m.Sweep(now); evicted > 0 {
				m.logger.Debug("session_stores_evicted", slog.Int("count", evicted))
			}
		case <-ctx.Done():
			return
		}
	}
}

// Ping reports whether the persisted-state backend is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.storage.Ping(ctx)
}

// # HTTP

// Middleware resolves the browser session of every request and injects its
// store into the request context. A missing, forged or expired cookie
// starts a fresh session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		sessionID := ""
		if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
			if id, err := m.signer.Verify(cookie.Value); err == nil {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuidv7.New()
			if err := m.issueCookie(writer, sessionID); err != nil {
				ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_cookie_failed", slog.String("error", err.Error()))
				http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		store := m.Store(ctx, sessionID)

		logger := ctxutil.GetLogger(ctx).With(slog.String("session_id", shortID(sessionID)))
		ctx = ctxutil.WithLogger(ctx, logger)
		ctx = WithStore(ctx, store)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *Manager) issueCookie(writer http.ResponseWriter, sessionID string) error {
	value, err := m.signer.Sign(sessionID, constants.SessionCookieLifetime)
	if err != nil {
		return err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(constants.SessionCookieLifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.options.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// # Context

// WithStore returns a new context carrying store.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, store)
}

// FromContext returns the store injected by [Manager.Middleware], or nil.
func FromContext(ctx context.Context) *Store {
	store, _ := ctx.Value(ctxkey.KeySession).(*Store)
	return store
}
