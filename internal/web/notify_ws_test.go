// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestNotifications_Stream delivers a notification and its expiry to the
browser's socket.
*/
func TestNotifications_Stream(t *testing.T) {
	a := newApp(t, func(w http.ResponseWriter, _ *http.Request) {})
	store := a.store()

	server := httptest.NewServer(a.handler)
	t.Cleanup(server.Close)

	// A visible notification is replayed to a new subscriber.
	store.SetNotification("Hallo")

	header := http.Header{}
	header.Set("Cookie", a.cookie.Name+"="+a.cookie.Value)
	conn, response, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/notifications", header)
	require.NoError(t, err)
	defer response.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "Hallo", string(message))

	_, message, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Empty(t, string(message))
	assert.Empty(t, store.Notification())
}

/*
TestNotifications_ForeignOrigin refuses cross-site sockets.
*/
func TestNotifications_ForeignOrigin(t *testing.T) {
	a := newApp(t, func(w http.ResponseWriter, _ *http.Request) {})
	a.store()

	server := httptest.NewServer(a.handler)
	t.Cleanup(server.Close)

	header := http.Header{}
	header.Set("Cookie", a.cookie.Name+"="+a.cookie.Value)
	header.Set("Origin", "https://evil.example")
	_, response, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/notifications", header)

	require.Error(t, err)
	require.NotNil(t, response)
	assert.Equal(t, http.StatusForbidden, response.StatusCode)
}
