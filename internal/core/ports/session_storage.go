package ports

import (
	"context"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// SessionStorage is the durable backing store for session snapshots. Load
// returns domain.ErrSessionNotFound for unknown ids.
type SessionStorage interface {
	Load(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, id string, s domain.Session) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
