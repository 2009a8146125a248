// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Upstream Pacing: Per-provider request budgets and 429 cooldowns.
  - Unification: Cache freshness and fuzzy-match thresholds.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kessen-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Battle generation fans out to both upstreams, so this is generous.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Inbound Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Upstream Pacing

const (
	// AniListRatePerMinute is the request budget against the AniList GraphQL API.
	AniListRatePerMinute = 90

	// JikanRatePerMinute is the request budget against the Jikan REST API
	// (Jikan allows ~3 rps; 240/min paces one request every 250ms).
	JikanRatePerMinute = 240

	// AniListCooldown is how long the AniList queue pauses after a 429.
	AniListCooldown = 60 * time.Second

	// JikanCooldown is how long the Jikan queue pauses after a 429.
	JikanCooldown = 1 * time.Second

	// SearchPageSize is the fixed result-page size requested from both upstreams.
	SearchPageSize = 10
)

// # Unification

const (
	// CacheTTL is how long a merged search or detail result stays fresh.
	CacheTTL = 30 * time.Minute

	// CacheSweepInterval is how often expired in-memory cache entries are evicted.
	CacheSweepInterval = 5 * time.Minute

	// DetectionThreshold is the minimum similarity/confidence to accept an
	// anime detection for a character name.
	DetectionThreshold = 0.7

	// DetectionLengthBound is the maximum byte-length difference between a
	// query and a candidate name before the similarity scan skips the pair.
	DetectionLengthBound = 5
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldItems   = "items"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixCharacters = "unified:characters:"
	RedisPrefixSeries     = "unified:series:"
)
