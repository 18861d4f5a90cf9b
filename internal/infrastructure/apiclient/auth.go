package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// Login authenticates with email and password. A successful response's token
// is persisted through the bound session before Login returns.
func (c *Client) Login(ctx context.Context, in domain.LoginInput) (*domain.Response[domain.AuthPayload], error) {
	resp, err := fetch[domain.AuthPayload](ctx, c, request{
		method: http.MethodPost, path: "/auth/login", route: "/auth/login", body: in,
	})
	if err != nil {
		return nil, err
	}
	if err := c.keepToken(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Register creates an account and signs it in, with the same token handling
// as Login.
func (c *Client) Register(ctx context.Context, in domain.RegisterInput) (*domain.Response[domain.AuthPayload], error) {
	resp, err := fetch[domain.AuthPayload](ctx, c, request{
		method: http.MethodPost, path: "/auth/register", route: "/auth/register", body: in,
	})
	if err != nil {
		return nil, err
	}
	if err := c.keepToken(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Logout(ctx context.Context) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodPost, path: "/auth/logout", route: "/auth/logout",
	})
}

// Profile fetches the user the bound token belongs to.
func (c *Client) Profile(ctx context.Context) (*domain.Response[domain.User], error) {
	return fetch[domain.User](ctx, c, request{
		method: http.MethodGet, path: "/auth/user", route: "/auth/user",
	})
}

func (c *Client) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.Response[domain.User], error) {
	return fetch[domain.User](ctx, c, request{
		method: http.MethodPut, path: "/auth/profile", route: "/auth/profile", body: in,
	})
}

func (c *Client) ChangePassword(ctx context.Context, in domain.PasswordChange) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodPut, path: "/auth/password", route: "/auth/password", body: in,
	})
}

func (c *Client) keepToken(ctx context.Context, resp *domain.Response[domain.AuthPayload]) error {
	if c.holder == nil || !resp.Success || resp.Data == nil || resp.Data.Token == "" {
		return nil
	}
	if err := c.holder.SaveToken(ctx, resp.Data.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}
