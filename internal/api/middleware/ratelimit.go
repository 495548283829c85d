package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/forumhub/forum-backend/internal/api/metrics"
)

// Limiter is the counting backend for rate limiting (Redis in production).
type Limiter interface {
	Allow(ctx context.Context, scope, key string, limit int64, window time.Duration) (bool, error)
}

// RateLimitConfig describes one fixed-window limit.
type RateLimitConfig struct {
	Scope  string
	Limit  int64
	Window time.Duration
}

// RateLimit rejects clients exceeding the configured requests-per-window,
// keyed by client IP. Backend failures let the request through: the limiter
// protects against abuse, it is not a correctness dependency.
func RateLimit(limiter Limiter, cfg RateLimitConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), cfg.Scope, c.RealIP(), cfg.Limit, cfg.Window)
			if err != nil {
				log.Warn().Err(err).Str("scope", cfg.Scope).Msg("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(cfg.Scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}
			return next(c)
		}
	}
}
