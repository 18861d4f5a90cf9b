package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/handler"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/middleware"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

const (
	loginPath = "/login"

	// statusClientClosed is nginx's code for a request abandoned by the client.
	statusClientClosed = 499
)

// NewHTTPErrorHandler renders every error in the ErrorResponse envelope. A 401
// on a route guarded by RequireAuth also carries a redirect to the login page;
// elsewhere it is reported without one.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, handler.ErrorResponse{Message: "The given data was invalid.", Errors: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrAuthExpired), errors.Is(err, domain.ErrNotAuthenticated):
		body := handler.ErrorResponse{Message: "Unauthenticated."}
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			body.Message = apiErr.Message
		}
		if middleware.IsProtected(c) {
			body.Redirect = loginPath
		}
		return http.StatusUnauthorized, body
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, handler.ErrorResponse{Message: "This action is unauthorized."}
	case errors.Is(err, domain.ErrRejected):
		code := domain.StatusOf(err)
		if code < http.StatusBadRequest {
			code = http.StatusUnprocessableEntity
		}
		return code, handler.ErrorResponse{
			Message: domain.ErrorMessage(err, "Request failed"),
			Errors:  domain.FieldErrors(err),
		}
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrMalformedEnvelope):
		log.Warn().Err(err).Str("path", c.Path()).Msg("marketplace API unavailable")
		return http.StatusBadGateway, handler.ErrorResponse{Message: "The marketplace is unavailable. Please try again."}
	case errors.Is(err, context.Canceled):
		return statusClientClosed, handler.ErrorResponse{Message: "request cancelled"}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Message: "internal server error"}
}
