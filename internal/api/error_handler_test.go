package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidToken, http.StatusBadRequest},
		{domain.ErrAlreadyVerified, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrMissingRefreshToken, http.StatusUnauthorized},
		{domain.ErrEmailNotVerified, http.StatusForbidden},
		{domain.ErrThemeClosed, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrThemeNotFound, http.StatusNotFound},
		{domain.ErrCategoryNotFound, http.StatusNotFound},
		{domain.ErrCommentNotFound, http.StatusNotFound},
		{domain.ErrLikeNotFound, http.StatusNotFound},
		{domain.ErrNewsNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrUsernameTaken, http.StatusConflict},
		{domain.ErrAlreadyLiked, http.StatusConflict},
	}

	for _, tc := range cases {
		code, msg := handleError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg != tc.err.Error() {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.err.Error(), msg)
		}
	}
}

func TestHTTPErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusTooManyRequests, "slow down"))
	if code != http.StatusTooManyRequests || msg != "slow down" {
		t.Fatalf("expected 429/slow down, got %d/%q", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorIs500(t *testing.T) {
	code, msg := handleError(t, errors.New("disk on fire"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// The message is surfaced, never swallowed.
	if msg != "disk on fire" {
		t.Fatalf("expected original message, got %q", msg)
	}
}
