package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
)

// Context keys shared with the handler package.
const (
	ctxUserID   = "user_id"
	ctxEmail    = "email"
	ctxUsername = "username"
	ctxRole     = "role"
)

// Auth validates the Bearer access token and injects the decoded identity
// into the request context. Signature and expiry only; access tokens carry no
// server-side state.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			result := tokens.Verify(parts[1], ports.PurposeAccess)
			if result.Status != ports.TokenValid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired access token")
			}

			return injectIdentity(c, next, result.Claims)
		}
	}
}

func injectIdentity(c echo.Context, next echo.HandlerFunc, claims *ports.Claims) error {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	if !domain.ValidRole(claims.Role) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown role claim")
	}

	c.Set(ctxUserID, uint(id))
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxRole, claims.Role)

	return next(c)
}
