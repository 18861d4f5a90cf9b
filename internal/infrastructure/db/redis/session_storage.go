package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/sealer"
)

const (
	sessionKeyPrefix  = "auth-storage:"
	defaultSessionTTL = 30 * 24 * time.Hour
)

// SessionStorage keeps sealed session snapshots in Redis. Every Save renews
// the TTL, so a session expires after TTL of inactivity.
// Key format: auth-storage:<session id>
type SessionStorage struct {
	client *redis.Client
	sealer *sealer.Sealer
	ttl    time.Duration
}

func NewSessionStorage(client *redis.Client, s *sealer.Sealer, ttl time.Duration) *SessionStorage {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStorage{client: client, sealer: s, ttl: ttl}
}

func (s *SessionStorage) Load(ctx context.Context, id string) (domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	sess, err := s.sealer.OpenSession(raw)
	if err != nil {
		// Unreadable snapshots (rotated secret, tampering) start over.
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStorage) Save(ctx context.Context, id string, sess domain.Session) error {
	sealed, err := s.sealer.SealSession(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+id, sealed, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
