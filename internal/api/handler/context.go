package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// ctxIdentity extracts the identity injected by the auth middleware and
// fast-fails with 401 when the route was wired without the guard.
func ctxIdentity(c echo.Context) (userID uint, role string, err error) {
	userID, ok := c.Get(CtxUserID).(uint)
	if !ok || userID == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(CtxRole).(string)
	return userID, role, nil
}
