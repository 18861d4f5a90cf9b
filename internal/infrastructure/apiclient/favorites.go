package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

func (c *Client) Favorites(ctx context.Context) (*domain.Page[domain.Favorite], error) {
	return fetchPage[domain.Favorite](ctx, c, request{
		method: http.MethodGet, path: "/favorites", route: "/favorites",
	})
}

func (c *Client) AddFavorite(ctx context.Context, propertyID int64) (*domain.Response[domain.Favorite], error) {
	return fetch[domain.Favorite](ctx, c, request{
		method: http.MethodPost, path: favoritePath(propertyID), route: "/favorites/{id}",
	})
}

func (c *Client) RemoveFavorite(ctx context.Context, propertyID int64) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodDelete, path: favoritePath(propertyID), route: "/favorites/{id}",
	})
}

func (c *Client) ToggleFavorite(ctx context.Context, propertyID int64) (*domain.Response[domain.FavoriteState], error) {
	return fetch[domain.FavoriteState](ctx, c, request{
		method: http.MethodPost, path: favoritePath(propertyID) + "/toggle", route: "/favorites/{id}/toggle",
	})
}

func (c *Client) CheckFavorite(ctx context.Context, propertyID int64) (*domain.Response[domain.FavoriteState], error) {
	return fetch[domain.FavoriteState](ctx, c, request{
		method: http.MethodGet, path: favoritePath(propertyID) + "/check", route: "/favorites/{id}/check",
	})
}

func favoritePath(propertyID int64) string {
	return fmt.Sprintf("/favorites/%d", propertyID)
}
