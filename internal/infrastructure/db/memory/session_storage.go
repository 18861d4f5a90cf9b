// Package memory holds process-local implementations of the storage ports,
// for tests and single-instance development runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// SessionStorage keeps snapshots in a map. Values are stored as copies, so
// callers can never mutate a persisted user in place.
type SessionStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{data: make(map[string][]byte)}
}

func (s *SessionStorage) Load(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	raw, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return sess.Normalize(), nil
}

func (s *SessionStorage) Save(_ context.Context, id string, sess domain.Session) error {
	raw, err := json.Marshal(sess.Normalize())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.data[id] = raw
	s.mu.Unlock()
	return nil
}

func (s *SessionStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
	return nil
}

func (s *SessionStorage) Ping(context.Context) error { return nil }

// Cache is a JSON cache with per-entry expiry.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	raw       []byte
	expiresAt time.Time
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry), now: time.Now}
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores val; a ttl of zero never expires.
func (c *Cache) Set(_ context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	e := cacheEntry{raw: raw}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Ping(context.Context) error { return nil }
