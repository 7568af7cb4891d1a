package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole is the single role-gating capability check: the verified
// identity's role must be one of allowedRoles, otherwise the request fails
// with 403. Runs after Auth, which is what populates the role claim.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
			}
			return next(c)
		}
	}
}
