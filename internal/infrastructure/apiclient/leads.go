package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

func (c *Client) Leads(ctx context.Context) (*domain.Page[domain.Lead], error) {
	return fetchPage[domain.Lead](ctx, c, request{
		method: http.MethodGet, path: "/leads", route: "/leads",
	})
}

func (c *Client) Lead(ctx context.Context, id int64) (*domain.Response[domain.Lead], error) {
	return fetch[domain.Lead](ctx, c, request{
		method: http.MethodGet, path: leadPath(id), route: "/leads/{id}",
	})
}

// CreateLead files an enquiry against a listing. It works without a session.
func (c *Client) CreateLead(ctx context.Context, propertyID int64, in domain.LeadInput) (*domain.Response[domain.Lead], error) {
	return fetch[domain.Lead](ctx, c, request{
		method: http.MethodPost, path: propertyPath(propertyID) + "/leads", route: "/properties/{id}/leads", body: in,
	})
}

func (c *Client) UpdateLeadStatus(ctx context.Context, id int64, status domain.LeadStatus) (*domain.Response[domain.Lead], error) {
	return fetch[domain.Lead](ctx, c, request{
		method: http.MethodPut,
		path:   leadPath(id) + "/status",
		route:  "/leads/{id}/status",
		body:   map[string]domain.LeadStatus{"status": status},
	})
}

func (c *Client) DeleteLead(ctx context.Context, id int64) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodDelete, path: leadPath(id), route: "/leads/{id}",
	})
}

func (c *Client) LeadStats(ctx context.Context) (*domain.Response[domain.LeadStats], error) {
	return fetch[domain.LeadStats](ctx, c, request{
		method: http.MethodGet, path: "/leads/stats", route: "/leads/stats",
	})
}

func leadPath(id int64) string {
	return fmt.Sprintf("/leads/%d", id)
}
