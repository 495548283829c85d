package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allow bool
	err   error
	calls int
}

func (s *stubLimiter) Allow(context.Context, string, string, int64, time.Duration) (bool, error) {
	s.calls++
	return s.allow, s.err
}

func limitedCall(t *testing.T, limiter *stubLimiter) error {
	t.Helper()
	mw := RateLimit(limiter, RateLimitConfig{Scope: "login", Limit: 5, Window: time.Minute}, zerolog.Nop())
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), httptest.NewRecorder())
	return mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	if err := limitedCall(t, limiter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected 1 limiter call, got %d", limiter.calls)
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	err := limitedCall(t, limiter)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	if err := limitedCall(t, limiter); err != nil {
		t.Fatalf("backend failure must not block the request: %v", err)
	}
}
