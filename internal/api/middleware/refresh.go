package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-backend/internal/core/ports"
)

// RefreshCookieName is the httpOnly cookie carrying the refresh token.
const RefreshCookieName = "refreshToken"

const ctxRefreshToken = "refresh_token"

// Refresh guards routes that consume the refresh-token cookie. A token is
// valid only when its signature checks out, it is unexpired, and a matching
// unexpired row exists in the revocation table. On any failure the cookie is
// cleared so the client is forced to log in again; when the failure is
// specifically "signature valid but expired" the stored row is purged too.
func Refresh(tokens ports.TokenService, sessions ports.RefreshTokenRepository, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(RefreshCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
			}
			token := cookie.Value
			ctx := c.Request().Context()

			result := tokens.Verify(token, ports.PurposeRefresh)
			switch result.Status {
			case ports.TokenExpired:
				// Expiry is distinguished from tampering for cleanup only:
				// the session row is dead weight and can go.
				_ = sessions.DeleteByToken(ctx, token)
				ClearRefreshCookie(c, secure)
				return echo.NewHTTPError(http.StatusUnauthorized, "refresh token expired, please log in again")
			case ports.TokenMalformed:
				ClearRefreshCookie(c, secure)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
			}

			row, err := sessions.FindByToken(ctx, token)
			if err != nil {
				// No row means the session was revoked; the signature no
				// longer matters.
				ClearRefreshCookie(c, secure)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
			}
			if time.Now().After(row.ExpiresAt) {
				_ = sessions.DeleteByToken(ctx, token)
				ClearRefreshCookie(c, secure)
				return echo.NewHTTPError(http.StatusUnauthorized, "refresh token expired, please log in again")
			}

			c.Set(ctxRefreshToken, token)
			return injectIdentity(c, next, result.Claims)
		}
	}
}

// RefreshTokenFromContext returns the validated refresh token stored by the
// Refresh guard.
func RefreshTokenFromContext(c echo.Context) string {
	token, _ := c.Get(ctxRefreshToken).(string)
	return token
}

// SetRefreshCookie writes the httpOnly session cookie.
func SetRefreshCookie(c echo.Context, token string, expires time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

// ClearRefreshCookie expires the session cookie immediately.
func ClearRefreshCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

// SameSite=None requires Secure; fall back to Lax for plain-HTTP development.
func sameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
