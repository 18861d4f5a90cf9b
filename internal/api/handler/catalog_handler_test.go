package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

func TestCatalogHandler_Stats(t *testing.T) {
	catalog := &stubCatalog{stats: domain.MarketStats{PropertiesCount: 42, IslandsCount: 4}}
	c, rec := newContext(http.MethodGet, "/stats", "", nil)

	if err := NewCatalogHandler(nil, catalog).Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["properties_count"] != float64(42) || data["islands_count"] != float64(4) {
		t.Fatalf("unexpected stats %+v", data)
	}
}

func TestCatalogHandler_Islands_Error(t *testing.T) {
	catalog := &stubCatalog{err: domain.ErrTransport}
	c, _ := newContext(http.MethodGet, "/islands", "", nil)

	if err := NewCatalogHandler(nil, catalog).Islands(c); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCatalogHandler_IslandProperties(t *testing.T) {
	u := newUpstream(t, reply(http.StatusOK, `{"success":true,"data":[]}`))
	sess := openSession(t, u, domain.Session{})

	c, rec := newContext(http.MethodGet, "/islands/siberut/properties?sort_by=price", "", sess)
	c.SetParamNames("slug")
	c.SetParamValues("siberut")
	if err := NewCatalogHandler(u.client, &stubCatalog{}).IslandProperties(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	last, _ := u.request()
	if !strings.HasSuffix(last.URL.Path, "/islands/siberut/properties") || last.URL.Query().Get("sort_by") != "price" {
		t.Fatalf("unexpected upstream call %s", last.URL)
	}
	if last.Header.Get("Authorization") != "" {
		t.Fatalf("anonymous visitor must not send a bearer header")
	}
}
