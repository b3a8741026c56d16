package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rechilab/volley-backend/internal/model"
)

// RequireAdmin rejects any request whose authenticated user is not an
// administrator.  It runs after TokenAuth, so a 403 here means "known user,
// insufficient role", distinct from the authentication failures upstream.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := c.Get(CtxUser).(model.User)
		if !ok || u.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "權限不足"})
		}
		return next(c)
	}
}
