package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lendstack/agency-system/internal/core/domain"
	"github.com/lendstack/agency-system/internal/core/service"
)

// RequireRoles gates a route on the acting role set by the Auth middleware.
// With no roles given the route is unrestricted.
func RequireRoles(requiredRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actingRole, _ := c.Get("role").(string)
			if !service.CanInvoke(requiredRoles, domain.Role(actingRole)) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
