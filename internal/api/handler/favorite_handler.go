package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

type FavoriteHandler struct {
	client *apiclient.Client
}

func NewFavoriteHandler(client *apiclient.Client) *FavoriteHandler {
	return &FavoriteHandler{client: client}
}

// List handles GET /favorites.
//
// @Summary      My favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  domain.Page[domain.Favorite]
// @Failure      401  {object}  ErrorResponse
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.Favorites(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Add handles POST /favorites/:property.
//
// @Summary      Add a favorite
// @Tags         favorites
// @Produce      json
// @Param        property  path      int  true  "Listing id"
// @Success      201       {object}  domain.Response[domain.Favorite]
// @Router       /favorites/{property} [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	id, client, err := h.target(c)
	if err != nil {
		return err
	}
	resp, err := client.AddFavorite(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// Remove handles DELETE /favorites/:property.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Produce      json
// @Param        property  path      int  true  "Listing id"
// @Success      200       {object}  domain.Response[any]
// @Router       /favorites/{property} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	id, client, err := h.target(c)
	if err != nil {
		return err
	}
	resp, err := client.RemoveFavorite(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Toggle handles POST /favorites/:property/toggle.
//
// @Summary      Toggle a favorite
// @Tags         favorites
// @Produce      json
// @Param        property  path      int  true  "Listing id"
// @Success      200       {object}  domain.Response[domain.FavoriteState]
// @Router       /favorites/{property}/toggle [post]
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	id, client, err := h.target(c)
	if err != nil {
		return err
	}
	resp, err := client.ToggleFavorite(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Check handles GET /favorites/:property/check.
//
// @Summary      Is the listing a favorite
// @Tags         favorites
// @Produce      json
// @Param        property  path      int  true  "Listing id"
// @Success      200       {object}  domain.Response[domain.FavoriteState]
// @Router       /favorites/{property}/check [get]
func (h *FavoriteHandler) Check(c echo.Context) error {
	id, client, err := h.target(c)
	if err != nil {
		return err
	}
	resp, err := client.CheckFavorite(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FavoriteHandler) target(c echo.Context) (int64, *apiclient.Client, error) {
	id, err := idParam(c, "property")
	if err != nil {
		return 0, nil, err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return 0, nil, err
	}
	return id, client, nil
}
