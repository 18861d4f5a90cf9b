package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

type stubCatalogAPI struct {
	categoriesFn func() (*domain.Page[domain.Category], error)
	islandsFn    func() (*domain.Page[domain.Island], error)
	featuredFn   func() (*domain.Page[domain.Property], error)
	listFn       func(f domain.PropertyFilters) (*domain.Page[domain.Property], error)

	// categoriesCtxFn, when set, replaces categoriesFn and sees the call's context.
	categoriesCtxFn func(ctx context.Context) (*domain.Page[domain.Category], error)

	categoryCalls atomic.Int32
}

func (a *stubCatalogAPI) Categories(ctx context.Context) (*domain.Page[domain.Category], error) {
	a.categoryCalls.Add(1)
	if a.categoriesCtxFn != nil {
		return a.categoriesCtxFn(ctx)
	}
	return a.categoriesFn()
}

func (a *stubCatalogAPI) Islands(context.Context) (*domain.Page[domain.Island], error) {
	return a.islandsFn()
}

func (a *stubCatalogAPI) FeaturedProperties(context.Context) (*domain.Page[domain.Property], error) {
	return a.featuredFn()
}

func (a *stubCatalogAPI) ListProperties(_ context.Context, f domain.PropertyFilters) (*domain.Page[domain.Property], error) {
	return a.listFn(f)
}

// stubCache round-trips values through JSON like the Redis cache does.
type stubCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *stubCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *stubCache) Set(_ context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

func (c *stubCache) Ping(context.Context) error { return nil }

func categoriesPage(names ...string) *domain.Page[domain.Category] {
	page := &domain.Page[domain.Category]{Success: true, Data: []domain.Category{}}
	for i, n := range names {
		page.Data = append(page.Data, domain.Category{ID: int64(i + 1), Name: n, Slug: n})
	}
	return page
}

func TestCatalogService_Categories_CachesResult(t *testing.T) {
	api := &stubCatalogAPI{
		categoriesFn: func() (*domain.Page[domain.Category], error) { return categoriesPage("villa", "land"), nil },
	}
	cache := newStubCache()
	svc := NewCatalogService(api, cache, time.Minute, zerolog.Nop())

	for i := 0; i < 3; i++ {
		got, err := svc.Categories(context.Background())
		if err != nil {
			t.Fatalf("Categories returned error: %v", err)
		}
		if len(got) != 2 || got[0].Slug != "villa" {
			t.Fatalf("unexpected categories: %+v", got)
		}
	}
	if n := api.categoryCalls.Load(); n != 1 {
		t.Fatalf("expected one upstream call, got %d", n)
	}
	if ttl := cache.ttls[keyCategories]; ttl != time.Minute {
		t.Fatalf("expected ttl 1m, got %s", ttl)
	}
}

func TestCatalogService_Categories_ErrorNotCached(t *testing.T) {
	fail := true
	api := &stubCatalogAPI{
		categoriesFn: func() (*domain.Page[domain.Category], error) {
			if fail {
				return nil, &domain.APIError{Kind: domain.ErrTransport, Err: errors.New("down")}
			}
			return categoriesPage("villa"), nil
		},
	}
	svc := NewCatalogService(api, newStubCache(), 0, zerolog.Nop())

	if _, err := svc.Categories(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}

	fail = false
	got, err := svc.Categories(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("expected recovery after failure, got %v, %v", got, err)
	}
}

func TestCatalogService_Stats(t *testing.T) {
	api := &stubCatalogAPI{
		listFn: func(f domain.PropertyFilters) (*domain.Page[domain.Property], error) {
			if f.PerPage != 1 {
				t.Fatalf("expected per_page=1, got %d", f.PerPage)
			}
			return &domain.Page[domain.Property]{Success: true, Meta: &domain.PageMeta{Total: 42}}, nil
		},
		islandsFn: func() (*domain.Page[domain.Island], error) {
			return &domain.Page[domain.Island]{Success: true, Data: []domain.Island{{ID: 1}, {ID: 2}, {ID: 3}}}, nil
		},
	}
	svc := NewCatalogService(api, nil, 0, zerolog.Nop())

	stats := svc.Stats(context.Background())
	if stats.PropertiesCount != 42 || stats.IslandsCount != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCatalogService_Stats_DegradesToZero(t *testing.T) {
	api := &stubCatalogAPI{
		listFn: func(domain.PropertyFilters) (*domain.Page[domain.Property], error) {
			return nil, errors.New("boom")
		},
		islandsFn: func() (*domain.Page[domain.Island], error) {
			return &domain.Page[domain.Island]{Success: true, Data: []domain.Island{{ID: 1}}}, nil
		},
	}
	svc := NewCatalogService(api, newStubCache(), 0, zerolog.Nop())

	stats := svc.Stats(context.Background())
	if stats.PropertiesCount != 0 || stats.IslandsCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	api.islandsFn = func() (*domain.Page[domain.Island], error) { return nil, errors.New("boom") }
	svc = NewCatalogService(api, newStubCache(), 0, zerolog.Nop())
	if stats := svc.Stats(context.Background()); stats != (domain.MarketStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestCatalogService_Refresh_OverwritesCache(t *testing.T) {
	name := "villa"
	api := &stubCatalogAPI{
		categoriesFn: func() (*domain.Page[domain.Category], error) { return categoriesPage(name), nil },
		islandsFn: func() (*domain.Page[domain.Island], error) {
			return &domain.Page[domain.Island]{Success: true, Data: []domain.Island{}}, nil
		},
		featuredFn: func() (*domain.Page[domain.Property], error) {
			return &domain.Page[domain.Property]{Success: true, Data: []domain.Property{}}, nil
		},
		listFn: func(domain.PropertyFilters) (*domain.Page[domain.Property], error) {
			return &domain.Page[domain.Property]{Success: true}, nil
		},
	}
	svc := NewCatalogService(api, newStubCache(), 0, zerolog.Nop())

	if _, err := svc.Categories(context.Background()); err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}

	name = "beachfront"
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	got, _ := svc.Categories(context.Background())
	if len(got) != 1 || got[0].Slug != "beachfront" {
		t.Fatalf("expected refreshed categories, got %+v", got)
	}
}

func TestCatalogService_Categories_CallerDeadlineWins(t *testing.T) {
	sawDeadline := make(chan bool, 1)
	api := &stubCatalogAPI{
		categoriesCtxFn: func(ctx context.Context) (*domain.Page[domain.Category], error) {
			_, ok := ctx.Deadline()
			sawDeadline <- ok
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc := NewCatalogService(api, newStubCache(), 0, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Categories(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Categories still blocked after the caller's deadline")
	}
	if !<-sawDeadline {
		t.Fatalf("expected the shared load to run under a deadline")
	}
}

func TestCatalogService_Refresh_KeepsCallerDeadline(t *testing.T) {
	api := &stubCatalogAPI{
		categoriesCtxFn: func(ctx context.Context) (*domain.Page[domain.Category], error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		islandsFn: func() (*domain.Page[domain.Island], error) {
			return &domain.Page[domain.Island]{Success: true}, nil
		},
		featuredFn: func() (*domain.Page[domain.Property], error) {
			return &domain.Page[domain.Property]{Success: true}, nil
		},
		listFn: func(domain.PropertyFilters) (*domain.Page[domain.Property], error) {
			return &domain.Page[domain.Property]{Success: true}, nil
		},
	}
	svc := NewCatalogService(api, newStubCache(), 0, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := svc.Refresh(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("Refresh ignored the caller's deadline")
	}
}
