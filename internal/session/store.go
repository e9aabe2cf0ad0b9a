// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session owns the client-side state of every browser session.

Each browser has exactly one [Store]. The store holds the backend access
token and the current notification message:

  - Token: written through to a browser-scoped [Storage] under the single key
    ACCESS_TOKEN, and hydrated from it when the store is created.
  - Notification: a short message that clears itself after a fixed delay.

The [Manager] maps the signed session cookie of a request to its store and
evicts stores that have been idle for too long. Evicted stores lose nothing:
the token is rehydrated from storage on the next request.
*/
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
)

// persistTimeout bounds a single write-through to storage.
const persistTimeout = 3 * time.Second

// Store is the session state of one browser.
//
// # Concurrency
//
// A browser may fire several requests at once (two tabs, a websocket and a
// page load). All methods are safe for concurrent use.
type Store struct {
	id      string
	storage Storage
	ttl     time.Duration
	logger  *slog.Logger

	// persistMu orders storage writes so the last SetToken wins in storage
	// exactly as it does in memory.
	persistMu sync.Mutex

	mu           sync.Mutex
	token        string
	notification string
	generation   uint64
	timer        *time.Timer
	subscribers  map[int]chan string
	nextSubID    int
	closed       bool
}

// NewStore creates the store of the browser session id and hydrates the
// token from storage.
//
// A storage failure is logged and leaves the session logged out; it never
// prevents the page from rendering.
func NewStore(ctx context.Context, id string, storage Storage, notificationTTL time.Duration, logger *slog.Logger) *Store {
	if notificationTTL <= 0 {
		notificationTTL = constants.DefaultNotificationTTL
	}

	store := &Store{
		id:          id,
		storage:     storage,
		ttl:         notificationTTL,
		logger:      logger.With(slog.String("session_id", shortID(id))),
		subscribers: make(map[int]chan string),
	}

	token, found, err := storage.Get(ctx, id, constants.StorageKeyAccessToken)
	switch {
	case err != nil:
		store.logger.WarnContext(ctx, "session_hydrate_failed", slog.String("error", err.Error()))
	case found:
		store.token = token
	}

	return store
}

// ID returns the browser session id.
func (s *Store) ID() string { return s.id }

// # Token

// Token returns the current access token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken replaces the access token and writes it through to storage.
//
// The empty value logs the session out and deletes the ACCESS_TOKEN record.
// Clearing an already cleared token does nothing, so several concurrent 401
// answers are harmless. Storage failures are logged; the in-memory token
// changes regardless.
func (s *Store) SetToken(ctx context.Context, value string) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if value == "" && s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token = value
	s.mu.Unlock()

	// The browser may already be gone; the record must still follow memory.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	var err error
	if value == "" {
		err = s.storage.Delete(persistCtx, s.id, constants.StorageKeyAccessToken)
	} else {
		err = s.storage.Set(persistCtx, s.id, constants.StorageKeyAccessToken, value)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "session_persist_failed",
			slog.Bool("logout", value == ""),
			slog.String("error", err.Error()),
		)
	}
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// # Notification

// Notification returns the visible notification, or "" when none is shown.
// Reading does not consume it; it disappears on its own.
func (s *Store) Notification() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notification
}

// SetNotification shows message and schedules it to clear after the
// notification TTL. A newer message restarts the delay; the timer of an
// older message never clears a newer one. The empty message clears at once.
func (s *Store) SetNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.notification = message
	s.publishLocked(message)

	if message == "" {
		return
	}

	generation := s.generation
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(generation) })
}

// expire clears the notification if no newer one was set since generation.
func (s *Store) expire(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation || s.closed {
		return
	}

	s.notification = ""
	s.timer = nil
	s.publishLocked("")
}

// # Subscriptions

// Subscribe returns a channel that receives every notification change,
// including the "" of a clear. The current notification is delivered first
// when one is visible. cancel must be called to release the subscription.
func (s *Store) Subscribe() (<-chan string, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel := make(chan string, 4)
	if s.closed {
		close(channel)
		return channel, func() {}
	}

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = channel

	if s.notification != "" {
		channel <- s.notification
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		})
	}
	return channel, cancel
}

// Subscribed reports whether a live subscription is attached.
func (s *Store) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers) > 0
}

// publishLocked fans message out without blocking. A slow subscriber loses
// its oldest pending value, never the newest.
func (s *Store) publishLocked(message string) {
	for _, channel := range s.subscribers {
		select {
		case channel <- message:
		default:
			select {
			case <-channel:
			default:
			}
			select {
			case channel <- message:
			default:
			}
		}
	}
}

// Close stops the notification timer and ends all subscriptions. The
// persisted token is left untouched.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	for id, channel := range s.subscribers {
		delete(s.subscribers, id)
		close(channel)
	}
}

// shortID keeps log lines readable without printing a full session id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
