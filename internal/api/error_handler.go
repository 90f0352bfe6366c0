package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to deterministic HTTP status codes
//     (400 validation, 401 authentication, 403 authorization, 404
//     not-found, 409 conflict).
//   - Logs unexpected errors internally without leaking details to the
//     client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware 401s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		forbidden  *domain.AuthorizationError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.As(err, &forbidden):
		return http.StatusForbidden, forbidden.Message
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Message
	case errors.Is(err, domain.ErrNoGamesAvailable):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Message
	}

	// Unexpected error: log the real cause, return an opaque message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
