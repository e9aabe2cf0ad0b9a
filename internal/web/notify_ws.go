// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxutil"
	"github.com/taibuivan/kryptotracker/internal/session"
)

const (
	// wsWriteWait bounds a single frame write.
	wsWriteWait = 10 * time.Second

	// wsPongWait is how long a silent browser is kept before the socket is closed.
	wsPongWait = 60 * time.Second

	// wsPingPeriod must stay below wsPongWait.
	wsPingPeriod = wsPongWait * 9 / 10

	// wsMaxMessageSize limits what the browser may send; it never sends data.
	wsMaxMessageSize = 512
)

/*
GET /ws/notifications.

Description: Upgrades to a websocket and streams every notification change
of the caller's session as a text frame. An empty frame clears the toast.
*/
func (handler *Handler) Notifications(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	store := session.FromContext(ctx)
	if store == nil {
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  256,
		WriteBufferSize: 1024,
		CheckOrigin:     handler.checkOrigin,
	}
	conn, err := upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade has already answered the request.
		logger.DebugContext(ctx, "ws_upgrade_failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	messages, cancel := store.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-messages:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			return
		}
	}
}

// readUntilClosed discards incoming frames and answers pongs until the
// browser goes away.
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// checkOrigin accepts the page's own origin and the configured extra origins.
func (handler *Handler) checkOrigin(request *http.Request) bool {
	origin := request.Header.Get(constants.HeaderOrigin)
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(parsed.Host, request.Host) {
		return true
	}
	return slices.Contains(handler.options.AllowedOrigins, origin)
}
