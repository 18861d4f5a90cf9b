package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/middleware"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/service"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/db/memory"
)

// upstream is a fake marketplace API that records the last request it saw.
type upstream struct {
	client *apiclient.Client

	mu   sync.Mutex
	last *http.Request
	body string
}

func (u *upstream) request() (*http.Request, string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.last, u.body
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.last, u.body = r, string(raw)
		u.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	u.client = apiclient.New(apiclient.Config{BaseURL: srv.URL + "/api", HTTPClient: srv.Client()}, zerolog.Nop())
	return u
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// openSession returns a session persisted in memory storage and seeded with
// seed, bound to the fake upstream.
func openSession(t *testing.T, u *upstream, seed domain.Session) ports.Session {
	t.Helper()
	storage := memory.NewSessionStorage()
	if err := storage.Save(context.Background(), "sid-1", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	mgr := service.NewSessionManager(storage, func(h ports.TokenHolder) ports.AuthAPI {
		return u.client.WithSession(h)
	}, zerolog.Nop())

	sess, err := mgr.Open(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return sess
}

func signedIn() domain.Session {
	return domain.Authenticated(&domain.User{ID: 7, Name: "Rani", Email: "rani@example.com", Role: domain.RoleOwner}, "tok-7")
}

// newContext builds an echo context carrying sess. body may be empty.
func newContext(method, target, body string, sess ports.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		middleware.SetSession(c, sess)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}
