package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known domain
// errors to deterministic HTTP status codes and renders a consistent JSON
// envelope: {"error": "<message>"}. Uncaught errors become 500 with the
// error's message; nothing is swallowed.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// 400 — malformed or already consumed capability.
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest, err.Error()

	// 401 — missing/invalid/expired credential.
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrMissingRefreshToken):
		return http.StatusUnauthorized, err.Error()

	// 403 — valid credential, insufficient state.
	case errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrThemeClosed):
		return http.StatusForbidden, err.Error()

	// 404
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrThemeNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrLikeNotFound),
		errors.Is(err, domain.ErrNewsNotFound):
		return http.StatusNotFound, err.Error()

	// 409 — uniqueness violation.
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusConflict, err.Error()
	}

	// Unexpected error: log the cause and surface the message with a 500.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}
