package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/handler"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/middleware"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/service"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/db/memory"
)

func newTestServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()
	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	log := zerolog.Nop()
	client := apiclient.New(apiclient.Config{BaseURL: api.URL + "/api", HTTPClient: api.Client()}, log)
	storage := memory.NewSessionStorage()
	cache := memory.NewCache()
	sessions := service.NewSessionManager(storage, func(h ports.TokenHolder) ports.AuthAPI {
		return client.WithSession(h)
	}, log)

	e := NewRouter(Deps{
		Client:  client,
		Catalog: service.NewCatalogService(client, cache, time.Minute, log),
		Session: middleware.SessionConfig{
			Manager: sessions,
			Secret:  []byte("router-test"),
			TTL:     time.Hour,
			Log:     log,
		},
		Checks:    map[string]handler.Pinger{"session_storage": storage, "cache": cache},
		AppConfig: handler.AppConfig{APIURL: client.BaseURL(), Environment: "test"},
		Log:       log,
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func marketplace(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/auth/login":
		_, _ = io.WriteString(w, `{"success":true,"data":{"user":{"id":1,"name":"Rani","role":"owner"},"token":"tok-1"}}`)
	case "/api/my-properties":
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"success":false,"message":"Unauthenticated."}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":3,"title":"Villa"}],"meta":{"total":1}}`)
	default:
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}
}

func TestRouter_Probes(t *testing.T) {
	srv := newTestServer(t, marketplace)

	for path, want := range map[string]int{
		"/health":       http.StatusOK,
		"/health/ready": http.StatusOK,
		"/metrics":      http.StatusOK,
		"/app-config":   http.StatusOK,
		"/nope":         http.StatusNotFound,
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Fatalf("GET %s: expected %d, got %d", path, want, resp.StatusCode)
		}
	}
}

func TestRouter_ProtectedRouteRedirects(t *testing.T) {
	srv := newTestServer(t, marketplace)

	resp, err := http.Get(srv.URL + "/my-properties")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	var body handler.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Redirect != "/login" {
		t.Fatalf("expected login redirect, got %+v", body)
	}
}

func TestRouter_LoginCarriesSessionAcrossRequests(t *testing.T) {
	srv := newTestServer(t, marketplace)

	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"rani@example.com","password":"secret"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from login, got %d", resp.StatusCode)
	}

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.CookieName {
			cookie = ck
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("expected an HttpOnly session cookie, got %v", resp.Cookies())
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/my-properties", nil)
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("my-properties: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with session cookie, got %d", resp.StatusCode)
	}
	var page domain.Page[domain.Property]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil || len(page.Data) != 1 {
		t.Fatalf("unexpected listing page %+v (%v)", page, err)
	}
}

func TestRouter_PublicRouteHasNoRedirect(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"Unauthenticated."}`)
	})

	resp, err := http.Get(srv.URL + "/properties")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var body handler.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode != http.StatusUnauthorized || body.Redirect != "" {
		t.Fatalf("expected bare 401, got %d %+v", resp.StatusCode, body)
	}
}

func TestRouter_LoginShowsInvalidCredentials(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected upstream call %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"Invalid credentials"}`)
	})

	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"rani@example.com","password":"wrong"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()

	var body handler.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode != http.StatusUnauthorized || body.Message != "Invalid credentials" || body.Redirect != "" {
		t.Fatalf("expected 401 with the upstream message, got %d %+v", resp.StatusCode, body)
	}
}
