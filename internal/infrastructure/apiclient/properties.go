package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// ListProperties returns one page of listings matching f. Only the filters
// that are set are sent.
func (c *Client) ListProperties(ctx context.Context, f domain.PropertyFilters) (*domain.Page[domain.Property], error) {
	return fetchPage[domain.Property](ctx, c, request{
		method: http.MethodGet, path: "/properties", route: "/properties", query: f.Values(),
	})
}

// GetProperty looks a listing up by slug.
func (c *Client) GetProperty(ctx context.Context, slug string) (*domain.Response[domain.Property], error) {
	return fetch[domain.Property](ctx, c, request{
		method: http.MethodGet, path: "/properties/" + url.PathEscape(slug), route: "/properties/{slug}",
	})
}

func (c *Client) CreateProperty(ctx context.Context, in domain.PropertyInput) (*domain.Response[domain.Property], error) {
	return fetch[domain.Property](ctx, c, request{
		method: http.MethodPost, path: "/properties", route: "/properties", body: in,
	})
}

func (c *Client) UpdateProperty(ctx context.Context, id int64, in domain.PropertyInput) (*domain.Response[domain.Property], error) {
	return fetch[domain.Property](ctx, c, request{
		method: http.MethodPut, path: propertyPath(id), route: "/properties/{id}", body: in,
	})
}

func (c *Client) DeleteProperty(ctx context.Context, id int64) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodDelete, path: propertyPath(id), route: "/properties/{id}",
	})
}

func (c *Client) FeaturedProperties(ctx context.Context) (*domain.Page[domain.Property], error) {
	return fetchPage[domain.Property](ctx, c, request{
		method: http.MethodGet, path: "/properties/featured", route: "/properties/featured",
	})
}

// LatestProperties lists the newest listings; perPage <= 0 uses the API default.
func (c *Client) LatestProperties(ctx context.Context, perPage int) (*domain.Page[domain.Property], error) {
	q := url.Values{}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	return fetchPage[domain.Property](ctx, c, request{
		method: http.MethodGet, path: "/properties/latest", route: "/properties/latest", query: q,
	})
}

// MyProperties lists the listings owned by the bound user.
func (c *Client) MyProperties(ctx context.Context) (*domain.Page[domain.Property], error) {
	return fetchPage[domain.Property](ctx, c, request{
		method: http.MethodGet, path: "/my-properties", route: "/my-properties",
	})
}

func propertyPath(id int64) string {
	return fmt.Sprintf("/properties/%d", id)
}
