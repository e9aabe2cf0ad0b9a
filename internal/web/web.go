// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web renders the KryptoTracker screens.

Every page is server-rendered from html/template. Handlers read the browser
session from the request context, call the backend through
[kryptoapi.Client] and either render the page, re-render the form with the
error lines of the call, or redirect with a notification.

# Routing Strategy

  - Public: landing page, notification websocket.
  - Guest only: /login, /register ([Handler.RequireGuest]).
  - Authenticated: /logout and everything under /user ([Handler.RequireUser]).
*/
package web

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxutil"
	"github.com/taibuivan/kryptotracker/internal/platform/respond"
	"github.com/taibuivan/kryptotracker/internal/session"
)

// Options configures a [Handler].
type Options struct {
	// VerifyToken re-checks the token against the backend on every
	// authenticated page.
	VerifyToken bool

	// AllowedOrigins may open the notification websocket besides the
	// page's own origin.
	AllowedOrigins []string
}

// Handler implements the page routes.
type Handler struct {
	api     *kryptoapi.Client
	pages   pageSet
	options Options
	logger  *slog.Logger
}

// NewHandler parses the embedded templates and creates a [Handler].
func NewHandler(api *kryptoapi.Client, options Options, logger *slog.Logger) (*Handler, error) {
	pages, err := loadPages()
	if err != nil {
		return nil, err
	}
	return &Handler{api: api, pages: pages, options: options, logger: logger}, nil
}

// Routes returns the page router. The session middleware must run before it.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get(constants.RouteLanding, handler.landing)

	// ## Guest
	router.Group(func(guest chi.Router) {
		guest.Use(handler.RequireGuest)
		guest.Get(constants.RouteLogin, handler.loginForm)
		guest.Post(constants.RouteLogin, handler.login)
		guest.Get("/register", handler.registerForm)
		guest.Post("/register", handler.register)
	})

	// ## Authenticated
	router.Group(func(user chi.Router) {
		user.Use(handler.RequireUser)
		if handler.options.VerifyToken {
			user.Use(handler.VerifyUser)
		}

		user.Post("/logout", handler.logout)

		user.Route("/user", func(pages chi.Router) {
			pages.Get("/dashboard", handler.dashboard)
			pages.Get("/settings", handler.settingsForm)
			pages.Post("/settings", handler.updateSettings)
			pages.Get("/add-portfolio", handler.portfolioForm)
			pages.Post("/add-portfolio", handler.createPortfolio)
			pages.Get("/add-asset", handler.assetForm)
			pages.Post("/add-asset", handler.addAsset)

			pages.Route("/transactions", func(transactions chi.Router) {
				transactions.Get("/", handler.listTransactions)
				transactions.Get("/add", handler.transactionForm)
				transactions.Post("/add", handler.createTransaction)
				transactions.Post("/{id}/delete", handler.deleteTransaction)
				transactions.Get("/import", handler.importForm)
				transactions.Post("/import", handler.importCSV)
			})

			pages.Get("/api", handler.listExchangeAPIs)
			pages.Get("/api/add", handler.exchangeAPIForm)
			pages.Post("/api/add", handler.addExchangeAPI)

			pages.Get("/taxes", handler.taxForm)
			pages.Post("/taxes", handler.requestTaxReport)
			pages.Get("/taxes/{id}/download", handler.downloadTaxReport)
		})
	})

	router.NotFound(handler.notFound)

	return router
}

// # Rendering

// view is the data every page template receives.
type view struct {
	Title         string
	Authenticated bool
	Notification  string
	Errors        []string
	Form          url.Values
	Data          any
}

// render writes page name. Nothing is written when the browser has gone
// away while the backend was answering.
func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, name string, page view) {
	ctx := request.Context()
	if ctxutil.Gone(ctx) {
		ctxutil.GetLogger(ctx).DebugContext(ctx, "render_skipped_client_gone", slog.String("page", name))
		return
	}

	if store := session.FromContext(ctx); store != nil {
		page.Authenticated = store.IsAuthenticated()
		page.Notification = store.Notification()
	}

	tmpl, ok := handler.pages[name]
	if !ok {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "page_not_registered", slog.String("page", name))
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	respond.HTML(writer, request, status, tmpl, layoutName, page)
}

// fail shows err on page name. An expired session ends on the landing page
// instead: the facade has already cleared the token.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, name string, page view, err error) {
	ctx := request.Context()
	if ctxutil.Gone(ctx) {
		return
	}

	if kryptoapi.IsSessionExpired(err) {
		handler.sessionExpired(writer, request)
		return
	}

	appError := respond.Normalize(request, err)
	page.Errors = appError.Messages()

	status := appError.HTTPStatus
	if status < http.StatusBadRequest {
		// A refused import is a normal outcome of the form.
		status = http.StatusOK
	}
	handler.render(writer, request, status, name, page)
}

// succeed sets the notification and redirects.
func (handler *Handler) succeed(writer http.ResponseWriter, request *http.Request, message, location string) {
	if ctxutil.Gone(request.Context()) {
		return
	}
	if store := session.FromContext(request.Context()); store != nil {
		store.SetNotification(message)
	}
	respond.Redirect(writer, request, location)
}

func (handler *Handler) sessionExpired(writer http.ResponseWriter, request *http.Request) {
	if store := session.FromContext(request.Context()); store != nil {
		store.SetNotification(kryptoapi.MsgSessionExpired)
	}
	respond.Redirect(writer, request, constants.RouteLanding)
}

func (handler *Handler) landing(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "landing", view{Title: "KryptoTracker"})
}

func (handler *Handler) notFound(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusNotFound, "not_found", view{Title: "Seite nicht gefunden"})
}

// store returns the session store of the request. The guards guarantee one
// on every authenticated route.
func store(request *http.Request) *session.Store {
	return session.FromContext(request.Context())
}
