package ports

import (
	"context"
	"time"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// CatalogAPI is the public, unauthenticated part of the marketplace API that
// the catalog cache reads through.
type CatalogAPI interface {
	Categories(ctx context.Context) (*domain.Page[domain.Category], error)
	Islands(ctx context.Context) (*domain.Page[domain.Island], error)
	FeaturedProperties(ctx context.Context) (*domain.Page[domain.Property], error)
	ListProperties(ctx context.Context, f domain.PropertyFilters) (*domain.Page[domain.Property], error)
}

// Cache stores JSON-encodable values under a key with a TTL. Get reports
// whether the key was present.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// CatalogService serves cached public catalog reads.
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Islands(ctx context.Context) ([]domain.Island, error)
	Featured(ctx context.Context) ([]domain.Property, error)
	Stats(ctx context.Context) domain.MarketStats
	Refresh(ctx context.Context) error
}
