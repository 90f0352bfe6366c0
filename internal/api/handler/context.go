package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

// ctxPrincipal extracts the auth claims injected by the Auth middleware
// into an explicit Principal value, with a fast-fail check before any
// service call: both claims must be present (presence proves the
// middleware ran) and the role must be one of the known three.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	if email == "" || role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !domain.Role(role).Valid() {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown role")
	}

	return domain.Principal{Email: email, Role: domain.Role(role)}, nil
}
