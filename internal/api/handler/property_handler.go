package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

const (
	defaultLatest = 6
	maxLatest     = 50
)

// PropertyHandler forwards listing reads and owner CRUD to the marketplace API.
// Backend envelopes are relayed as they arrive.
type PropertyHandler struct {
	client  *apiclient.Client
	catalog ports.CatalogService
}

func NewPropertyHandler(client *apiclient.Client, catalog ports.CatalogService) *PropertyHandler {
	return &PropertyHandler{client: client, catalog: catalog}
}

type propertyRequest struct {
	Title        string           `json:"title" validate:"required,max=255"`
	Description  string           `json:"description" validate:"required"`
	CategoryID   int64            `json:"category_id" validate:"required,gt=0"`
	IslandID     int64            `json:"island_id" validate:"required,gt=0"`
	Price        float64          `json:"price" validate:"required,gt=0"`
	PriceType    domain.PriceType `json:"price_type" validate:"required,oneof=sale rent_daily rent_monthly rent_yearly"`
	LandArea     *float64         `json:"land_area" validate:"omitempty,gt=0"`
	BuildingArea *float64         `json:"building_area" validate:"omitempty,gt=0"`
	Address      string           `json:"address" validate:"required"`
	Latitude     *float64         `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64         `json:"longitude" validate:"omitempty,longitude"`
	Bedrooms     *int             `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms    *int             `json:"bathrooms" validate:"omitempty,min=0"`
	Facilities   []string         `json:"facilities"`
}

// propertyPatch is the partial update form; zero values are not sent upstream.
type propertyPatch struct {
	Title        string           `json:"title" validate:"omitempty,max=255"`
	Description  string           `json:"description"`
	CategoryID   int64            `json:"category_id" validate:"omitempty,gt=0"`
	IslandID     int64            `json:"island_id" validate:"omitempty,gt=0"`
	Price        float64          `json:"price" validate:"omitempty,gt=0"`
	PriceType    domain.PriceType `json:"price_type" validate:"omitempty,oneof=sale rent_daily rent_monthly rent_yearly"`
	LandArea     *float64         `json:"land_area" validate:"omitempty,gt=0"`
	BuildingArea *float64         `json:"building_area" validate:"omitempty,gt=0"`
	Address      string           `json:"address"`
	Latitude     *float64         `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64         `json:"longitude" validate:"omitempty,longitude"`
	Bedrooms     *int             `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms    *int             `json:"bathrooms" validate:"omitempty,min=0"`
	Facilities   []string         `json:"facilities"`
}

func (r propertyRequest) input() domain.PropertyInput {
	return domain.PropertyInput(r)
}

func (r propertyPatch) input() domain.PropertyInput {
	return domain.PropertyInput(r)
}

type listResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
}

// List handles GET /properties.
//
// @Summary      Search listings
// @Tags         properties
// @Produce      json
// @Param        search      query     string  false  "Free text"
// @Param        price_type  query     string  false  "sale | rent_daily | rent_monthly | rent_yearly"
// @Param        island_id   query     int     false  "Island"
// @Param        page        query     int     false  "Page number"
// @Success      200         {object}  domain.Page[domain.Property]
// @Failure      502         {object}  ErrorResponse
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	f, err := bindFilters(c)
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	page, err := client.ListProperties(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Featured is served from the catalog cache.
//
// @Summary      Featured listings
// @Tags         properties
// @Produce      json
// @Success      200  {object}  listResponse[domain.Property]
// @Router       /properties/featured [get]
func (h *PropertyHandler) Featured(c echo.Context) error {
	props, err := h.catalog.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Property]{Success: true, Data: props})
}

// Latest handles GET /properties/latest.
//
// @Summary      Latest listings
// @Tags         properties
// @Produce      json
// @Param        per_page  query     int  false  "Number of listings (default 6)"
// @Success      200       {object}  domain.Page[domain.Property]
// @Router       /properties/latest [get]
func (h *PropertyHandler) Latest(c echo.Context) error {
	n := defaultLatest
	if raw := c.QueryParam("per_page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxLatest {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid per_page")
		}
		n = v
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	page, err := client.LatestProperties(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /properties/:property.
//
// @Summary      Listing detail
// @Tags         properties
// @Produce      json
// @Param        property  path      string  true  "Listing slug"
// @Success      200       {object}  domain.Response[domain.Property]
// @Failure      404       {object}  ErrorResponse
// @Router       /properties/{property} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	resp, err := client.GetProperty(c.Request().Context(), c.Param("property"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /properties.
//
// @Summary      Create a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        body  body      propertyRequest  true  "Listing"
// @Success      201   {object}  domain.Response[domain.Property]
// @Failure      401   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req propertyRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.CreateProperty(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// Update handles PUT /properties/:property.
//
// @Summary      Update a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        property  path      int            true  "Listing id"
// @Param        body      body      propertyPatch  true  "Fields to change"
// @Success      200       {object}  domain.Response[domain.Property]
// @Failure      401       {object}  ErrorResponse
// @Failure      422       {object}  ErrorResponse
// @Router       /properties/{property} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := idParam(c, "property")
	if err != nil {
		return err
	}
	var req propertyPatch
	if err := bindValid(c, &req); err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.UpdateProperty(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /properties/:property.
//
// @Summary      Delete a listing
// @Tags         properties
// @Produce      json
// @Param        property  path      int  true  "Listing id"
// @Success      200       {object}  domain.Response[any]
// @Failure      401       {object}  ErrorResponse
// @Router       /properties/{property} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "property")
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.DeleteProperty(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Mine lists the signed-in owner's listings.
//
// @Summary      My listings
// @Tags         properties
// @Produce      json
// @Success      200  {object}  domain.Page[domain.Property]
// @Failure      401  {object}  ErrorResponse
// @Router       /my-properties [get]
func (h *PropertyHandler) Mine(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.MyProperties(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
