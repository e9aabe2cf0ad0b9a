// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Cookie names, storage keys and notification timing.
  - Backend API: Freshness windows for cached GET resources.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kryptotracker-web"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// CSV uploads are read in full, so this is larger than for a JSON API.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 55 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session

const (
	// SessionCookieName carries the signed browser session id.
	SessionCookieName = "kt_session"

	// SessionIssuer is the 'iss' claim of the browser session cookie.
	SessionIssuer = "kryptotracker-web"

	// SessionCookieLifetime bounds how long a browser keeps its session cookie.
	SessionCookieLifetime = 30 * 24 * time.Hour

	// SessionSweepInterval is how often idle session stores are evicted from memory.
	SessionSweepInterval = 1 * time.Minute

	// StorageKeyAccessToken is the single persisted client state key.
	StorageKeyAccessToken = "ACCESS_TOKEN"

	// DefaultNotificationTTL is how long a notification stays visible.
	DefaultNotificationTTL = 2500 * time.Millisecond

	// StorageStatementTimeout bounds a single persisted-state query.
	StorageStatementTimeout = 3 * time.Second
)

// # Backend API

const (
	// TokenScheme prefixes the token in the Authorization header.
	TokenScheme = "Token"

	// CSRFCookieName and CSRFHeaderName form the double-submit pair expected
	// by the backend on state-changing requests.
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"

	// Freshness windows of cached GET resources.
	DashboardFreshness        = 30 * time.Minute
	PortfolioFreshness        = 5 * time.Minute
	PortfolioTypeFreshness    = 60 * time.Minute
	TransactionFreshness      = 60 * time.Minute
	TransactionTypeFreshness  = 60 * time.Minute
	CurrentUserFreshness      = 60 * time.Minute
	ExchangeAPIFreshness      = 5 * time.Minute
	DefaultAPITimeout         = 45 * time.Second
	MaxImportUploadBytes      = 32 << 20
	MaxBackendReportBodyBytes = 64 << 20
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// # Routes

const (
	// RouteLanding is where guests are sent when they hit a protected route.
	RouteLanding = "/"

	// RouteDashboard is the authenticated landing route.
	RouteDashboard = "/user/dashboard"

	RouteLogin = "/login"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixStorage = "kt:storage:"
	RedisPrefixAPI     = "kt:api:"
)
