package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

// CatalogHandler serves categories, islands and the home page counters.
// Collection reads go through the catalog cache; single items and their
// listings go straight to the marketplace API.
type CatalogHandler struct {
	client  *apiclient.Client
	catalog ports.CatalogService
}

func NewCatalogHandler(client *apiclient.Client, catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{client: client, catalog: catalog}
}

type statsResponse struct {
	Success bool               `json:"success"`
	Data    domain.MarketStats `json:"data"`
}

// Categories handles GET /categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listResponse[domain.Category]
// @Failure      502  {object}  ErrorResponse
// @Router       /categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Category]{Success: true, Data: cats})
}

// Category handles GET /categories/:slug.
//
// @Summary      Category detail
// @Tags         catalog
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  domain.Response[domain.Category]
// @Router       /categories/{slug} [get]
func (h *CatalogHandler) Category(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	resp, err := client.Category(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// CategoryProperties handles GET /categories/:slug/properties.
//
// @Summary      Listings in a category
// @Tags         catalog
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  domain.Page[domain.Property]
// @Router       /categories/{slug}/properties [get]
func (h *CatalogHandler) CategoryProperties(c echo.Context) error {
	f, err := bindFilters(c)
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.CategoryProperties(c.Request().Context(), c.Param("slug"), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Islands handles GET /islands.
//
// @Summary      List islands
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listResponse[domain.Island]
// @Failure      502  {object}  ErrorResponse
// @Router       /islands [get]
func (h *CatalogHandler) Islands(c echo.Context) error {
	islands, err := h.catalog.Islands(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Island]{Success: true, Data: islands})
}

// Island handles GET /islands/:slug.
//
// @Summary      Island detail
// @Tags         catalog
// @Produce      json
// @Param        slug  path      string  true  "Island slug"
// @Success      200   {object}  domain.Response[domain.Island]
// @Router       /islands/{slug} [get]
func (h *CatalogHandler) Island(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	resp, err := client.Island(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// IslandProperties handles GET /islands/:slug/properties.
//
// @Summary      Listings on an island
// @Tags         catalog
// @Produce      json
// @Param        slug  path      string  true  "Island slug"
// @Success      200   {object}  domain.Page[domain.Property]
// @Router       /islands/{slug}/properties [get]
func (h *CatalogHandler) IslandProperties(c echo.Context) error {
	f, err := bindFilters(c)
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.IslandProperties(c.Request().Context(), c.Param("slug"), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Stats never fails; unknown counts are 0.
//
// @Summary      Home page counters
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  statsResponse
// @Router       /stats [get]
func (h *CatalogHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, statsResponse{Success: true, Data: h.catalog.Stats(c.Request().Context())})
}
