package ports

import (
	"context"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// SessionState is what the browser is told about its session. The token never
// leaves the server.
type SessionState struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

// Session is one visitor's authentication context.
type Session interface {
	TokenHolder

	ID() string
	Snapshot() domain.Session
	State() SessionState

	Login(ctx context.Context, in domain.LoginInput) error
	Register(ctx context.Context, in domain.RegisterInput) error
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, in domain.ProfileUpdate) error
	ChangePassword(ctx context.Context, in domain.PasswordChange) error
	ClearError()
}

// SessionManager rehydrates sessions from durable storage.
type SessionManager interface {
	NewID() string
	Open(ctx context.Context, id string) (Session, error)
}
