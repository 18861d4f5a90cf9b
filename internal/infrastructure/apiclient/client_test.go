package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type stubHolder struct {
	mu      sync.Mutex
	token   string
	saved   []string
	revoked int
}

func (h *stubHolder) BearerToken() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

func (h *stubHolder) SaveToken(_ context.Context, token string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.saved = append(h.saved, token)
	return nil
}

func (h *stubHolder) RevokeToken(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
	h.revoked++
	return nil
}

// newTestClient starts an upstream served by handler and returns a client
// pointing at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/api/", HTTPClient: srv.Client()}, zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// ---------------------------------------------------------------------------
// Headers and credentials
// ---------------------------------------------------------------------------

func TestClient_AttachesBearerToken(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":1,"name":"Ayu"}}`)
	})

	holder := &stubHolder{token: "abc"}
	if _, err := c.WithSession(holder).Profile(context.Background()); err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}

	if auth := got.Get("Authorization"); auth != "Bearer abc" {
		t.Fatalf("expected exact bearer header, got %q", auth)
	}
	if got.Get(ProxyBypassHeader) != "true" {
		t.Fatalf("expected proxy bypass header")
	}
	if got.Get("Accept") != "application/json" || got.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected default headers: %v", got)
	}
}

func TestClient_AnonymousSendsNoAuthorization(t *testing.T) {
	var present bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	})

	if _, err := c.WithSession(&stubHolder{}).Categories(context.Background()); err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}
	if present {
		t.Fatalf("expected no Authorization header for an anonymous session")
	}

	if _, err := c.Islands(context.Background()); err != nil {
		t.Fatalf("Islands returned error: %v", err)
	}
	if present {
		t.Fatalf("expected no Authorization header for an unbound client")
	}
}

func TestClient_UnauthorizedRevokesToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"message":"Unauthenticated."}`)
	})
	holder := &stubHolder{token: "stale"}

	_, err := c.WithSession(holder).Favorites(context.Background())
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired, got %v", err)
	}
	if holder.revoked != 1 || holder.BearerToken() != "" {
		t.Fatalf("expected token revoked once, revoked=%d token=%q", holder.revoked, holder.BearerToken())
	}
	if domain.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", domain.StatusOf(err))
	}
	if err.Error() != "Unauthenticated." {
		t.Fatalf("expected backend message, got %q", err.Error())
	}
}

func TestClient_LoginSavesToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"email":"ayu@example.com"`) {
			t.Fatalf("unexpected body %s", body)
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"user":{"id":7},"token":"tok-7"}}`)
	})
	holder := &stubHolder{}

	resp, err := c.WithSession(holder).Login(context.Background(), domain.LoginInput{Email: "ayu@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Data.User.ID != 7 {
		t.Fatalf("unexpected user %+v", resp.Data.User)
	}
	if len(holder.saved) != 1 || holder.saved[0] != "tok-7" {
		t.Fatalf("expected token saved, got %v", holder.saved)
	}
}

func TestClient_LoginFailureSavesNothing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":false,"message":"Invalid credentials"}`)
	})
	holder := &stubHolder{}

	resp, err := c.WithSession(holder).Login(context.Background(), domain.LoginInput{})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Success || len(holder.saved) != 0 {
		t.Fatalf("expected unsuccessful envelope and no saved token")
	}
}

// ---------------------------------------------------------------------------
// Failures and envelopes
// ---------------------------------------------------------------------------

func TestClient_RejectionCarriesFieldErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity,
			`{"success":false,"message":"The given data was invalid.","errors":{"email":["The email has already been taken."]}}`)
	})

	_, err := c.Register(context.Background(), domain.RegisterInput{})
	if !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if fields := domain.FieldErrors(err); len(fields["email"]) != 1 {
		t.Fatalf("expected email field error, got %v", fields)
	}
}

func TestClient_RejectionWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetProperty(context.Background(), "villa")
	if err == nil || err.Error() != "request failed with status code 500" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(Config{BaseURL: srv.URL}, zerolog.Nop())

	if _, err := c.Categories(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClient_ListEmptyBodyIsEmptyPage(t *testing.T) {
	for name, body := range map[string]string{
		"empty":    "",
		"not json": "<html>tunnel</html>",
		"no data":  `{"success":true}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = io.WriteString(w, body)
			})

			page, err := c.ListProperties(context.Background(), domain.PropertyFilters{})
			if err != nil {
				t.Fatalf("ListProperties returned error: %v", err)
			}
			if page.Data == nil || len(page.Data) != 0 || page.Total() != 0 {
				t.Fatalf("expected empty page, got %+v", page)
			}
		})
	}
}

func TestClient_SingleObjectMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if _, err := c.Island(context.Background(), "siberut"); !errors.Is(err, domain.ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Categories(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

func TestClient_FilterQuery(t *testing.T) {
	var rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"success":true,"data":[],"meta":{"total":0}}`)
	})

	if _, err := c.ListProperties(context.Background(), domain.PropertyFilters{PriceType: domain.PriceSale}); err != nil {
		t.Fatalf("ListProperties returned error: %v", err)
	}
	if rawQuery != "price_type=sale" {
		t.Fatalf("expected price_type=sale, got %q", rawQuery)
	}
}

func TestClient_UploadPropertyImages(t *testing.T) {
	var names []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties/12/images" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		for _, fh := range r.MultipartForm.File["images[]"] {
			names = append(names, fh.Filename)
		}
		writeJSON(w, http.StatusCreated, `{"success":true,"data":[{"id":1},{"id":2}]}`)
	})

	page, err := c.UploadPropertyImages(context.Background(), 12, []domain.ImageUpload{
		{Filename: "a.jpg", ContentType: "image/jpeg", Content: []byte("a")},
		{Filename: "b.png", ContentType: "image/png", Content: []byte("b")},
	})
	if err != nil {
		t.Fatalf("UploadPropertyImages returned error: %v", err)
	}
	if len(names) != 2 || names[0] != "a.jpg" || names[1] != "b.png" {
		t.Fatalf("unexpected uploaded files %v", names)
	}
	if len(page.Data) != 2 {
		t.Fatalf("expected two images, got %d", len(page.Data))
	}
}

func TestClient_CheckAvailabilityQuery(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("check_in_date") + "/" + r.URL.Query().Get("check_out_date")
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"available":true}}`)
	})

	if _, err := c.CheckAvailability(context.Background(), 3, domain.StayWindow{CheckInDate: "2026-07-01", CheckOutDate: "2026-07-05"}); err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if query != "2026-07-01/2026-07-05" {
		t.Fatalf("unexpected availability query %q", query)
	}
}

func TestClient_TransitionBooking(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":9,"status":"confirmed"}}`)
	})

	if _, err := c.ConfirmBooking(context.Background(), 9); err != nil {
		t.Fatalf("ConfirmBooking returned error: %v", err)
	}
	if path != "PUT /api/bookings/9/confirm" {
		t.Fatalf("unexpected request %q", path)
	}
	if _, err := c.TransitionBooking(context.Background(), 9, BookingAction("archive")); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
