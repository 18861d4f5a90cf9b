package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

func (c *Client) Categories(ctx context.Context) (*domain.Page[domain.Category], error) {
	return fetchPage[domain.Category](ctx, c, request{
		method: http.MethodGet, path: "/categories", route: "/categories",
	})
}

func (c *Client) Category(ctx context.Context, slug string) (*domain.Response[domain.Category], error) {
	return fetch[domain.Category](ctx, c, request{
		method: http.MethodGet, path: "/categories/" + url.PathEscape(slug), route: "/categories/{slug}",
	})
}

func (c *Client) CategoryProperties(ctx context.Context, slug string, f domain.PropertyFilters) (*domain.Page[domain.Property], error) {
	return fetchPage[domain.Property](ctx, c, request{
		method: http.MethodGet,
		path:   "/categories/" + url.PathEscape(slug) + "/properties",
		route:  "/categories/{slug}/properties",
		query:  f.Values(),
	})
}

func (c *Client) Islands(ctx context.Context) (*domain.Page[domain.Island], error) {
	return fetchPage[domain.Island](ctx, c, request{
		method: http.MethodGet, path: "/islands", route: "/islands",
	})
}

func (c *Client) Island(ctx context.Context, slug string) (*domain.Response[domain.Island], error) {
	return fetch[domain.Island](ctx, c, request{
		method: http.MethodGet, path: "/islands/" + url.PathEscape(slug), route: "/islands/{slug}",
	})
}

func (c *Client) IslandProperties(ctx context.Context, slug string, f domain.PropertyFilters) (*domain.Page[domain.Property], error) {
	return fetchPage[domain.Property](ctx, c, request{
		method: http.MethodGet,
		path:   "/islands/" + url.PathEscape(slug) + "/properties",
		route:  "/islands/{slug}/properties",
		query:  f.Values(),
	})
}
