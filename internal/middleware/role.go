package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clientdesk/internal/common"
	"clientdesk/internal/models"
)

// RequireAdmin gates routes that only the agency may call. Per-resource
// tenant checks are the access guard's job inside the services; this only
// fences off the admin-only surface.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := common.GetActorFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if actor.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
