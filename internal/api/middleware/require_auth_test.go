package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

func contextWith(snap *domain.Session) echo.Context {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if snap != nil {
		c.Set(sessionKey, &stubSession{id: "s", snap: *snap})
	}
	return c
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireAuth_Authenticated(t *testing.T) {
	snap := domain.Authenticated(&domain.User{ID: 1}, "tok")
	c := contextWith(&snap)

	if err := RequireAuth()(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsProtected(c) {
		t.Fatalf("expected request marked protected")
	}
}

func TestRequireAuth_Anonymous(t *testing.T) {
	c := contextWith(&domain.Session{})

	err := RequireAuth()(okHandler)(c)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if !IsProtected(c) {
		t.Fatalf("expected request marked protected even when rejected")
	}
}

func TestRequireAuth_NoSession(t *testing.T) {
	if err := RequireAuth()(okHandler)(contextWith(nil)); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	owner := domain.Authenticated(&domain.User{ID: 1, Role: domain.RoleOwner}, "tok")
	if err := RequireRole(domain.RoleOwner, domain.RoleAgent)(okHandler)(contextWith(&owner)); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}

	user := domain.Authenticated(&domain.User{ID: 2, Role: domain.RoleUser}, "tok")
	if err := RequireRole(domain.RoleOwner)(okHandler)(contextWith(&user)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestIsProtected_DefaultFalse(t *testing.T) {
	if IsProtected(contextWith(nil)) {
		t.Fatalf("expected unprotected by default")
	}
}
