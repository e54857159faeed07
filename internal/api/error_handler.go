package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to its fixed HTTP status codes.
//   - Logs unexpected errors internally without leaking details (or
//     credentials) to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var (
		authnErr    *domain.AuthenticationError
		authzErr    *domain.AuthorizationError
		notFound    *domain.NotFoundError
		badRequest  *domain.BadRequestError
		conflict    *domain.ConflictError
		upstream    *domain.UpstreamError
		unreachable *domain.ConnectivityError
	)

	switch {
	case errors.As(err, &authnErr):
		return http.StatusUnauthorized, authnErr.Error()
	case errors.As(err, &authzErr):
		return http.StatusForbidden, authzErr.Error()
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, badRequest.Error()
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Error()
	case errors.As(err, &upstream):
		if upstream.ServerSide() {
			return http.StatusBadGateway, "airflow reported a server error"
		}
		// Pass through whatever status Airflow produced, body included.
		return upstream.Status, upstream.Body
	case errors.As(err, &unreachable):
		log.Warn().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("airflow unreachable")
		return http.StatusGatewayTimeout, "airflow did not respond"

	// Login failures.
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
