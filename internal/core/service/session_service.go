package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/metrics"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
)

const (
	msgLoginFailed          = "Login failed"
	msgRegistrationFailed   = "Registration failed"
	msgFetchProfileFailed   = "Failed to fetch profile"
	msgUpdateProfileFailed  = "Failed to update profile"
	msgChangePasswordFailed = "Failed to change password"
)

// SessionStore is one visitor's authentication context. It is the only writer
// of its Session: every mutation goes through the store's lock and is
// persisted before the lock is released. Upstream calls run outside the lock,
// so overlapping actions resolve last-response-wins.
type SessionStore struct {
	id      string
	storage ports.SessionStorage
	api     ports.AuthAPI
	log     zerolog.Logger

	mu      sync.Mutex
	state   domain.Session
	loading bool
	lastErr string
}

func newSessionStore(id string, state domain.Session, storage ports.SessionStorage, api ports.AuthAPIFactory, log zerolog.Logger) *SessionStore {
	s := &SessionStore{
		id:      id,
		storage: storage,
		log:     log.With().Str("session_id", id).Logger(),
		state:   state.Normalize(),
	}
	s.api = api(s)
	return s
}

func (s *SessionStore) ID() string {
	return s.id
}

// Snapshot returns a copy of the persisted triple.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// State is the browser-facing view: no token.
func (s *SessionStore) State() ports.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ports.SessionState{
		User:            s.state.User,
		IsAuthenticated: s.state.IsAuthenticated,
		IsLoading:       s.loading,
		Error:           s.lastErr,
	}
}

// ── TokenHolder ───────────────────────────────────────────────────────────────

func (s *SessionStore) BearerToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// SaveToken starts a fresh credential: the previous user is dropped until the
// auth response that issued token is applied.
func (s *SessionStore) SaveToken(ctx context.Context, token string) error {
	return s.update(ctx, func(st *domain.Session) {
		*st = domain.Session{Token: token}
	})
}

// RevokeToken is the 401 path: the whole session is cleared.
func (s *SessionStore) RevokeToken(ctx context.Context) error {
	err := s.update(ctx, func(st *domain.Session) {
		*st = domain.Session{}
	})
	metrics.SessionAction("expire", err)
	return err
}

// ── Actions ───────────────────────────────────────────────────────────────────

// Login authenticates and, on success, moves the session to Authenticated.
// Any failure leaves it Anonymous with the error recorded, and is returned.
func (s *SessionStore) Login(ctx context.Context, in domain.LoginInput) error {
	s.begin(true)

	resp, err := s.api.Login(ctx, in)
	if err == nil {
		err = checkAuthPayload(resp, msgLoginFailed)
	}
	if err != nil {
		s.fail(ctx, domain.ErrorMessage(err, msgLoginFailed), true)
		metrics.SessionAction("login", err)
		return err
	}

	err = s.update(ctx, func(st *domain.Session) {
		*st = domain.Authenticated(resp.Data.User, resp.Data.Token)
	})
	metrics.SessionAction("login", err)
	return err
}

// Register has the same contract as Login against the registration endpoint.
func (s *SessionStore) Register(ctx context.Context, in domain.RegisterInput) error {
	s.begin(true)

	resp, err := s.api.Register(ctx, in)
	if err == nil {
		err = checkAuthPayload(resp, msgRegistrationFailed)
	}
	if err != nil {
		s.fail(ctx, domain.ErrorMessage(err, msgRegistrationFailed), true)
		metrics.SessionAction("register", err)
		return err
	}

	err = s.update(ctx, func(st *domain.Session) {
		*st = domain.Authenticated(resp.Data.User, resp.Data.Token)
	})
	metrics.SessionAction("register", err)
	return err
}

// Logout revokes the token upstream on a best-effort basis and always clears
// the local session. Only a failure to persist the cleared state is returned.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	hasToken := s.state.Token != ""
	s.mu.Unlock()

	if hasToken {
		if _, err := s.api.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("logout request failed")
		}
	}

	err := s.update(ctx, func(st *domain.Session) {
		*st = domain.Session{}
	})
	s.ClearError()
	metrics.SessionAction("logout", err)
	return err
}

// FetchProfile refreshes the cached user. A 401 clears the session; any other
// failure keeps the current state. The error is recorded and returned, and
// the call is never retried.
func (s *SessionStore) FetchProfile(ctx context.Context) error {
	s.begin(true)

	resp, err := s.api.Profile(ctx)
	if err == nil && (!resp.Success || resp.Data == nil) {
		err = domain.Rejection(0, msgFetchProfileFailed, resp.Errors)
	}
	if err != nil {
		s.fail(ctx, backendMessage(err, msgFetchProfileFailed), errors.Is(err, domain.ErrAuthExpired))
		metrics.SessionAction("fetch_profile", err)
		return err
	}

	user := resp.Data
	err = s.update(ctx, func(st *domain.Session) {
		st.User = user
	})
	metrics.SessionAction("fetch_profile", err)
	return err
}

// UpdateProfile sends a partial user and replaces the cached one with the
// server's answer.
func (s *SessionStore) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) error {
	s.begin(true)

	resp, err := s.api.UpdateProfile(ctx, in)
	if err == nil && (!resp.Success || resp.Data == nil) {
		err = rejectedWith(resp.Message, resp.Errors, msgUpdateProfileFailed)
	}
	if err != nil {
		s.fail(ctx, domain.ErrorMessage(err, msgUpdateProfileFailed), false)
		metrics.SessionAction("update_profile", err)
		return err
	}

	user := resp.Data
	err = s.update(ctx, func(st *domain.Session) {
		st.User = user
	})
	metrics.SessionAction("update_profile", err)
	return err
}

// ChangePassword leaves the session untouched on success.
func (s *SessionStore) ChangePassword(ctx context.Context, in domain.PasswordChange) error {
	s.begin(true)

	resp, err := s.api.ChangePassword(ctx, in)
	if err == nil && !resp.Success {
		err = rejectedWith(resp.Message, resp.Errors, msgChangePasswordFailed)
	}
	if err != nil {
		s.fail(ctx, domain.ErrorMessage(err, msgChangePasswordFailed), false)
		metrics.SessionAction("change_password", err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	metrics.SessionAction("change_password", nil)
	return nil
}

func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// ── State transitions ─────────────────────────────────────────────────────────

func (s *SessionStore) begin(resetErr bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	if resetErr {
		s.lastErr = ""
	}
}

// update applies fn, re-derives IsAuthenticated and persists the result.
func (s *SessionStore) update(ctx context.Context, fn func(*domain.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	s.state = s.state.Normalize()
	s.loading = false
	return s.persistLocked(ctx)
}

func (s *SessionStore) fail(ctx context.Context, msg string, clearAuth bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.lastErr = msg
	if !clearAuth {
		return
	}
	s.state = domain.Session{}
	if err := s.persistLocked(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to persist cleared session")
	}
}

// persistLocked writes the triple even if the request that triggered the
// change was cancelled, so memory and storage never diverge.
func (s *SessionStore) persistLocked(ctx context.Context) error {
	if err := s.storage.Save(context.WithoutCancel(ctx), s.id, s.state); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func checkAuthPayload(resp *domain.Response[domain.AuthPayload], fallback string) error {
	if resp.Success && resp.Data != nil && resp.Data.User != nil && resp.Data.Token != "" {
		return nil
	}
	return rejectedWith(resp.Message, resp.Errors, fallback)
}

func rejectedWith(message string, fields map[string][]string, fallback string) error {
	if message == "" {
		message = fallback
	}
	return domain.Rejection(0, message, fields)
}

// backendMessage prefers the server's message and otherwise uses fallback,
// never the transport error text.
func backendMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// ── Manager ───────────────────────────────────────────────────────────────────

// SessionManager opens SessionStores rehydrated from durable storage.
type SessionManager struct {
	storage ports.SessionStorage
	api     ports.AuthAPIFactory
	log     zerolog.Logger
}

func NewSessionManager(storage ports.SessionStorage, api ports.AuthAPIFactory, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		storage: storage,
		api:     api,
		log:     log.With().Str("component", "session").Logger(),
	}
}

// NewID mints a session id.
func (m *SessionManager) NewID() string {
	return uuid.NewString()
}

// Open rehydrates the session id. Unknown ids start Anonymous.
func (m *SessionManager) Open(ctx context.Context, id string) (ports.Session, error) {
	stored, err := m.storage.Load(ctx, id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		stored = domain.Session{}
	case err != nil:
		return nil, fmt.Errorf("open session: %w", err)
	}

	if stored.IsAuthenticated != stored.Normalize().IsAuthenticated {
		m.log.Warn().Str("session_id", id).Msg("inconsistent session snapshot normalised")
	}

	return newSessionStore(id, stored, m.storage, m.api, m.log), nil
}
