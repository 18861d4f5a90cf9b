package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AppConfig is the public runtime configuration the browser bundle reads on
// boot instead of baking it in at build time.
type AppConfig struct {
	APIURL        string `json:"api_url"`
	GATrackingID  string `json:"ga_tracking_id,omitempty"`
	Environment   string `json:"environment"`
	SessionCookie string `json:"session_cookie"`
}

type AppConfigHandler struct {
	cfg AppConfig
}

func NewAppConfigHandler(cfg AppConfig) *AppConfigHandler {
	return &AppConfigHandler{cfg: cfg}
}

// Get handles GET /app-config.
//
// @Summary      Browser runtime configuration
// @Tags         config
// @Produce      json
// @Success      200  {object}  AppConfig
// @Router       /app-config [get]
func (h *AppConfigHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cfg)
}
