package ports

import (
	"context"
	"encoding/json"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// AuthAPI is the slice of the marketplace API the session store drives.
type AuthAPI interface {
	Login(ctx context.Context, in domain.LoginInput) (*domain.Response[domain.AuthPayload], error)
	Register(ctx context.Context, in domain.RegisterInput) (*domain.Response[domain.AuthPayload], error)
	Logout(ctx context.Context) (*domain.Response[json.RawMessage], error)
	Profile(ctx context.Context) (*domain.Response[domain.User], error)
	UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.Response[domain.User], error)
	ChangePassword(ctx context.Context, in domain.PasswordChange) (*domain.Response[json.RawMessage], error)
}

// AuthAPIFactory binds an AuthAPI to one session's credentials.
type AuthAPIFactory func(holder TokenHolder) AuthAPI
