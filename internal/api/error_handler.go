package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lendstack/agency-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Kind is
// the machine-readable classification from the domain taxonomy.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "kind": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	if code, ok := statusFor(err); ok {
		return code, errorResponse{Error: err.Error(), Kind: string(domain.Kind(err))}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCreatorNotFound),
		errors.Is(err, domain.ErrTenantNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrUnauthorizedRole):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, true
	case errors.Is(err, domain.ErrInvalidClaims),
		errors.Is(err, domain.ErrCreatorHasNoTenant):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, domain.ErrTenantCreation):
		return http.StatusBadGateway, true
	}
	return 0, false
}
