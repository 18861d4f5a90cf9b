package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/handler"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/middleware"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Client    *apiclient.Client
	Catalog   ports.CatalogService
	Session   middleware.SessionConfig
	Checks    map[string]handler.Pinger
	AppConfig handler.AppConfig
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics())

	// --- Operational endpoints (no session) ---
	health := handler.NewHealthHandler(d.Checks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/app-config", handler.NewAppConfigHandler(d.AppConfig).Get)

	// Every application route resolves the visitor's session first. Route-level
	// middleware keeps unknown paths answering 404 instead of 401.
	sess := middleware.Session(d.Session)
	auth := middleware.RequireAuth()
	manager := middleware.RequireRole(domain.RoleOwner, domain.RoleAgent, domain.RoleAdmin)

	public := []echo.MiddlewareFunc{sess}
	member := []echo.MiddlewareFunc{sess, auth}
	owner := []echo.MiddlewareFunc{sess, auth, manager}

	// --- Session ---
	authH := handler.NewAuthHandler()
	e.GET("/auth/session", authH.Session, public...)
	e.POST("/auth/login", authH.Login, public...)
	e.POST("/auth/register", authH.Register, public...)
	e.POST("/auth/logout", authH.Logout, public...)
	e.DELETE("/auth/error", authH.ClearError, public...)
	e.GET("/auth/user", authH.Profile, member...)
	e.PUT("/auth/profile", authH.UpdateProfile, member...)
	e.PUT("/auth/password", authH.ChangePassword, member...)

	// --- Catalog ---
	props := handler.NewPropertyHandler(d.Client, d.Catalog)
	catalog := handler.NewCatalogHandler(d.Client, d.Catalog)
	bookings := handler.NewBookingHandler(d.Client)
	leads := handler.NewLeadHandler(d.Client)

	e.GET("/properties", props.List, public...)
	e.GET("/properties/featured", props.Featured, public...)
	e.GET("/properties/latest", props.Latest, public...)
	e.GET("/properties/:property", props.Get, public...)
	e.GET("/properties/:property/availability", bookings.Availability, public...)
	e.POST("/properties/:property/leads", leads.Create, public...)
	e.GET("/categories", catalog.Categories, public...)
	e.GET("/categories/:slug", catalog.Category, public...)
	e.GET("/categories/:slug/properties", catalog.CategoryProperties, public...)
	e.GET("/islands", catalog.Islands, public...)
	e.GET("/islands/:slug", catalog.Island, public...)
	e.GET("/islands/:slug/properties", catalog.IslandProperties, public...)
	e.GET("/stats", catalog.Stats, public...)

	// --- Listing management ---
	images := handler.NewImageHandler(d.Client)
	e.POST("/properties", props.Create, owner...)
	e.PUT("/properties/:property", props.Update, owner...)
	e.DELETE("/properties/:property", props.Delete, owner...)
	e.GET("/my-properties", props.Mine, owner...)
	e.POST("/properties/:property/images", images.Upload, owner...)
	e.PUT("/properties/:property/images/reorder", images.Reorder, owner...)
	e.DELETE("/properties/:property/images/:image", images.Delete, owner...)
	e.PUT("/properties/:property/images/:image/primary", images.SetPrimary, owner...)

	// --- Favorites ---
	favs := handler.NewFavoriteHandler(d.Client)
	e.GET("/favorites", favs.List, member...)
	e.POST("/favorites/:property", favs.Add, member...)
	e.DELETE("/favorites/:property", favs.Remove, member...)
	e.POST("/favorites/:property/toggle", favs.Toggle, member...)
	e.GET("/favorites/:property/check", favs.Check, member...)

	// --- Leads ---
	e.GET("/leads", leads.List, owner...)
	e.GET("/leads/stats", leads.Stats, owner...)
	e.GET("/leads/:lead", leads.Get, owner...)
	e.PUT("/leads/:lead/status", leads.UpdateStatus, owner...)
	e.DELETE("/leads/:lead", leads.Delete, owner...)

	// --- Bookings ---
	e.POST("/properties/:property/bookings", bookings.Create, member...)
	e.GET("/bookings", bookings.List, member...)
	e.GET("/bookings/stats", bookings.Stats, member...)
	e.GET("/bookings/:booking", bookings.Get, member...)
	e.PUT("/bookings/:booking/:action", bookings.Transition, member...)
	e.GET("/property-bookings", bookings.PropertyBookings, owner...)

	return e
}
