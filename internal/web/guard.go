// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxutil"
	"github.com/taibuivan/kryptotracker/internal/platform/respond"
	"github.com/taibuivan/kryptotracker/internal/session"
)

// RequireUser lets authenticated sessions through and sends guests to the
// landing page without running next.
func (handler *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		store := session.FromContext(request.Context())
		if store == nil || !store.IsAuthenticated() {
			respond.Redirect(writer, request, constants.RouteLanding)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireGuest sends authenticated sessions to the dashboard.
func (handler *Handler) RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if store := session.FromContext(request.Context()); store != nil && store.IsAuthenticated() {
			respond.Redirect(writer, request, constants.RouteDashboard)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// VerifyUser checks the token against the backend. It runs after
// [Handler.RequireUser]. A rejected token ends the session; an unreachable
// backend does not, the page itself will report it.
func (handler *Handler) VerifyUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, err := handler.api.CurrentUser(ctx, session.FromContext(ctx))
		switch {
		case err == nil:
		case kryptoapi.IsSessionExpired(err):
			handler.sessionExpired(writer, request)
			return
		default:
			ctxutil.GetLogger(ctx).WarnContext(ctx, "token_verification_skipped", slog.String("error", err.Error()))
		}

		next.ServeHTTP(writer, request)
	})
}
