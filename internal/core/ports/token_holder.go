package ports

import "context"

// TokenHolder is the session context a bound API client reads its bearer token
// from and reconciles after auth calls.
type TokenHolder interface {
	// BearerToken returns the current token, or "" for anonymous calls.
	BearerToken() string
	// SaveToken persists a token issued by login or register.
	SaveToken(ctx context.Context, token string) error
	// RevokeToken drops the persisted credential after a 401.
	RevokeToken(ctx context.Context) error
}
