package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

// RequireRole enforces role-based access control on routes that are
// restricted beyond authentication, e.g. the user listing.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
