package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/middleware"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

// currentSession returns the session the Session middleware attached. Its
// absence means the route was registered without the middleware.
func currentSession(c echo.Context) (ports.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	return sess, nil
}

// bound returns base bound to the visitor's session, so the call carries the
// visitor's token and a 401 clears their session.
func bound(c echo.Context, base *apiclient.Client) (*apiclient.Client, error) {
	sess, err := currentSession(c)
	if err != nil {
		return nil, err
	}
	return base.WithSession(sess), nil
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" id")
	}
	return id, nil
}

// bindFilters reads listing filters from the query string.
func bindFilters(c echo.Context) (domain.PropertyFilters, error) {
	var f domain.PropertyFilters
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid filters")
	}
	return f, nil
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
