// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package kryptoapi is the single gateway to the remote KryptoTracker REST API.

Every screen talks to the backend through [Client]. The client attaches the
session token, performs the CSRF double-submit, caches idempotent reads and
turns every failure into an [*apperr.AppError] whose Messages can be shown
as-is:

  - 401 on an authenticated call: the token is cleared, the session ends.
  - other 4xx: every message of the body, in the order the backend wrote them.
  - 5xx: one generic server message.
  - transport failures: one generic connectivity message.

Raw transport errors are logged, never returned to a view.
*/
package kryptoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxutil"
	"github.com/taibuivan/kryptotracker/internal/platform/sec"
)

// User-facing messages of normalized failures.
const (
	MsgServerError    = "Serverfehler bitte später erneut versuchen."
	MsgNetworkError   = "Keine Verbindung zum Datenbankserver. Bitte später erneut versuchen."
	MsgSessionExpired = "Sitzung abgelaufen. Bitte erneut anmelden."
	MsgRequestFailed  = "Die Anfrage konnte nicht verarbeitet werden."
)

func init() {
	// The backend stores amounts as floats and expects JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TokenHolder is the session state the client reads the token from and
// clears it in on a 401. [*session.Store] implements it.
type TokenHolder interface {
	Token() string
	SetToken(ctx context.Context, value string)
}

// Config holds the dependencies of a [Client].
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8000".
	BaseURL string

	// HTTPClient performs the calls. Its Timeout bounds every call.
	HTTPClient *http.Client

	// Cache stores idempotent GET responses. Nil disables caching.
	Cache Cache

	// Limiter bounds the outbound call rate. Nil disables limiting.
	Limiter *rate.Limiter

	// Logger is used when the request context carries no logger.
	Logger *slog.Logger

	// MaxBodyBytes bounds a response body. Zero means
	// constants.MaxBackendReportBodyBytes.
	MaxBodyBytes int64
}

// Client is the API gateway facade.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cache   Cache
	limiter *rate.Limiter
	logger  *slog.Logger
	maxBody int64
}

// New validates cfg and creates a [Client].
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("kryptoapi: invalid base URL %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultAPITimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = constants.MaxBackendReportBodyBytes
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		cache:   cfg.Cache,
		limiter: cfg.Limiter,
		logger:  logger,
		maxBody: maxBody,
	}, nil
}

// # Call Plumbing

// call describes one backend request.
type call struct {
	method string
	path   string

	// auth sends the session token and enables the 401 forced logout.
	auth bool

	// body is JSON encoded when set.
	body any

	// upload is a prebuilt multipart body.
	upload *multipartBody

	// freshness > 0 makes a GET cacheable for that long.
	freshness time.Duration

	// rejectable turns a 202 {message} answer into [apperr.Rejected].
	rejectable bool

	// logPath replaces path in logs when path embeds a secret.
	logPath string
}

func (op call) loggedPath() string {
	if op.logPath != "" {
		return op.logPath
	}
	return op.path
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// do performs op and returns the raw 2xx response or a normalized error.
func (c *Client) do(ctx context.Context, th TokenHolder, op call) (*response, error) {
	logger := c.requestLogger(ctx)

	token := ""
	if op.auth {
		token = th.Token()
		if token == "" {
			return nil, apperr.Unauthorized(MsgSessionExpired)
		}
	}

	cacheable := op.method == http.MethodGet && op.freshness > 0 && c.cache != nil
	cacheKey := ""
	if cacheable {
		cacheKey = c.cacheKey(ctx, token, op.path)
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			logger.DebugContext(ctx, "backend_cache_hit", slog.String("path", op.loggedPath()))
			return &response{status: http.StatusOK, header: http.Header{}, body: body}, nil
		}
	}

	request, err := c.newRequest(ctx, op, token)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperr.NetworkError(MsgNetworkError, fmt.Errorf("rate limiter: %w", err))
		}
	}

	startTime := time.Now()
	httpResponse, err := c.http.Do(request)
	if err != nil {
		logger.WarnContext(ctx, "backend_unreachable",
			slog.String("method", op.method),
			slog.String("path", op.loggedPath()),
			slog.String("error", err.Error()),
		)
		return nil, apperr.NetworkError(MsgNetworkError, err)
	}
	defer httpResponse.Body.Close()

	// One byte past the limit tells a complete body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(httpResponse.Body, c.maxBody+1))
	if err != nil {
		logger.WarnContext(ctx, "backend_read_failed", slog.String("path", op.loggedPath()), slog.String("error", err.Error()))
		return nil, apperr.NetworkError(MsgNetworkError, err)
	}
	if int64(len(body)) > c.maxBody {
		logger.WarnContext(ctx, "backend_body_too_large",
			slog.String("path", op.loggedPath()),
			slog.Int64("limit_bytes", c.maxBody),
		)
		return nil, apperr.ServerError(MsgServerError, fmt.Errorf("backend %s %s: body exceeds %d bytes", op.method, op.loggedPath(), c.maxBody))
	}

	logger.DebugContext(ctx, "backend_call",
		slog.String("method", op.method),
		slog.String("path", op.loggedPath()),
		slog.Int("status", httpResponse.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	status := httpResponse.StatusCode
	switch {
	case status == http.StatusUnauthorized && op.auth:
		logger.InfoContext(ctx, "backend_token_rejected", slog.String("path", op.loggedPath()))
		th.SetToken(ctx, "")
		c.invalidate(ctx, token)
		return nil, apperr.Unauthorized(MsgSessionExpired)

	case status >= 500:
		return nil, apperr.ServerError(MsgServerError, fmt.Errorf("backend %s %s: status %d", op.method, op.loggedPath(), status))

	case status >= 400:
		return nil, clientError(status, body)

	case status == http.StatusAccepted && op.rejectable:
		return nil, apperr.Rejected(acceptedMessage(body))

	case status < 200 || status >= 300:
		return nil, apperr.ServerError(MsgServerError, fmt.Errorf("backend %s %s: unexpected status %d", op.method, op.loggedPath(), status))
	}

	if cacheable && status == http.StatusOK {
		c.cache.Set(ctx, cacheKey, body, op.freshness)
	}
	if op.method != http.MethodGet && op.auth {
		c.invalidate(ctx, token)
	}

	return &response{status: status, header: httpResponse.Header, body: body}, nil
}

func (c *Client) newRequest(ctx context.Context, op call, token string) (*http.Request, error) {
	var (
		reader      io.Reader
		contentType string
	)
	switch {
	case op.upload != nil:
		reader = bytes.NewReader(op.upload.payload)
		contentType = op.upload.contentType
	case op.body != nil:
		payload, err := json.Marshal(op.body)
		if err != nil {
			return nil, fmt.Errorf("kryptoapi: encode %s: %w", op.loggedPath(), err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	target := c.baseURL.JoinPath(op.path)
	// JoinPath drops a trailing slash the backend routes depend on.
	if strings.HasSuffix(op.path, "/") && !strings.HasSuffix(target.Path, "/") {
		target.Path += "/"
	}

	request, err := http.NewRequestWithContext(ctx, op.method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("kryptoapi: build %s: %w", op.loggedPath(), err)
	}

	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set(constants.HeaderContentType, contentType)
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, constants.TokenScheme+" "+token)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	if op.method != http.MethodGet {
		csrfToken, err := sec.NewCSRFToken()
		if err != nil {
			return nil, err
		}
		request.AddCookie(&http.Cookie{Name: constants.CSRFCookieName, Value: csrfToken})
		request.Header.Set(constants.CSRFHeaderName, csrfToken)
	}

	return request, nil
}

// decode unmarshals a 2xx JSON body. A body the client cannot read is a
// transport problem from the user's point of view.
func (c *Client) decode(ctx context.Context, resp *response, path string, target any) error {
	if err := json.Unmarshal(resp.body, target); err != nil {
		c.requestLogger(ctx).WarnContext(ctx, "backend_decode_failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return apperr.NetworkError(MsgNetworkError, err)
	}
	return nil
}

func (c *Client) requestLogger(ctx context.Context) *slog.Logger {
	if logger := ctxutil.GetLogger(ctx); logger != slog.Default() {
		return logger
	}
	return c.logger
}

// IsSessionExpired reports whether err ended the session.
func IsSessionExpired(err error) bool {
	return apperr.HasCode(err, apperr.CodeUnauthorized)
}

// IsTransient reports whether err is a server or connectivity failure that
// says nothing about the validity of the session.
func IsTransient(err error) bool {
	return apperr.HasCode(err, apperr.CodeServer) || apperr.HasCode(err, apperr.CodeNetwork)
}

// errEmptyToken is returned by Login and Register when a 2xx answer carries
// no token.
var errEmptyToken = errors.New("kryptoapi: backend answered without a token")
