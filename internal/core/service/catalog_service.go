package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/metrics"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
)

const (
	defaultCatalogTTL = 5 * time.Minute

	// loadTimeout bounds a shared cache fill, which outlives the caller that
	// started it.
	loadTimeout = 15 * time.Second
)

const (
	keyCategories = "catalog:categories"
	keyIslands    = "catalog:islands"
	keyFeatured   = "catalog:featured"
	keyStats      = "catalog:stats"
)

type catalogService struct {
	api   ports.CatalogAPI
	cache ports.Cache
	ttl   time.Duration
	group singleflight.Group
	log   zerolog.Logger
}

// NewCatalogService wraps the public catalog endpoints with a read-through
// cache. Concurrent misses for the same entry share one upstream call.
func NewCatalogService(api ports.CatalogAPI, cache ports.Cache, ttl time.Duration, log zerolog.Logger) ports.CatalogService {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &catalogService{
		api:   api,
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("component", "catalog").Logger(),
	}
}

func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s, keyCategories, "categories", s.loadCategories)
}

func (s *catalogService) Islands(ctx context.Context) ([]domain.Island, error) {
	return cached(ctx, s, keyIslands, "islands", s.loadIslands)
}

func (s *catalogService) Featured(ctx context.Context) ([]domain.Property, error) {
	return cached(ctx, s, keyFeatured, "featured", s.loadFeatured)
}

// Stats never fails: counts that cannot be fetched are reported as 0.
func (s *catalogService) Stats(ctx context.Context) domain.MarketStats {
	stats, err := cached(ctx, s, keyStats, "stats", s.loadStats)
	if err != nil {
		s.log.Warn().Err(err).Msg("market stats unavailable")
		return domain.MarketStats{}
	}
	return stats
}

// Refresh reloads every entry regardless of what the cache holds.
func (s *catalogService) Refresh(ctx context.Context) error {
	return errors.Join(
		refresh(ctx, s, keyCategories, s.loadCategories),
		refresh(ctx, s, keyIslands, s.loadIslands),
		refresh(ctx, s, keyFeatured, s.loadFeatured),
		refresh(ctx, s, keyStats, s.loadStats),
	)
}

func (s *catalogService) loadCategories(ctx context.Context) ([]domain.Category, error) {
	page, err := s.api.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return page.Data, nil
}

func (s *catalogService) loadIslands(ctx context.Context) ([]domain.Island, error) {
	page, err := s.api.Islands(ctx)
	if err != nil {
		return nil, fmt.Errorf("load islands: %w", err)
	}
	return page.Data, nil
}

func (s *catalogService) loadFeatured(ctx context.Context) ([]domain.Property, error) {
	page, err := s.api.FeaturedProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("load featured properties: %w", err)
	}
	return page.Data, nil
}

// loadStats degrades each count to 0 on its own. It only fails, and so skips
// the cache, when neither count could be fetched.
func (s *catalogService) loadStats(ctx context.Context) (domain.MarketStats, error) {
	var stats domain.MarketStats

	props, propErr := s.api.ListProperties(ctx, domain.PropertyFilters{PerPage: 1})
	if propErr == nil {
		stats.PropertiesCount = props.Total()
	} else {
		s.log.Warn().Err(propErr).Msg("failed to count properties")
	}

	islands, islandErr := s.api.Islands(ctx)
	if islandErr == nil {
		stats.IslandsCount = int64(len(islands.Data))
	} else {
		s.log.Warn().Err(islandErr).Msg("failed to count islands")
	}

	if propErr != nil && islandErr != nil {
		return stats, fmt.Errorf("load stats: %w", errors.Join(propErr, islandErr))
	}
	return stats, nil
}

func cached[T any](ctx context.Context, s *catalogService, key, label string, load func(context.Context) (T, error)) (T, error) {
	var out T
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &out)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		case hit:
			metrics.CatalogCacheTotal.WithLabelValues(label, "hit").Inc()
			return out, nil
		}
	}
	metrics.CatalogCacheTotal.WithLabelValues(label, "miss").Inc()

	ch := s.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return store(loadCtx, s, key, load)
	})
	select {
	case <-ctx.Done():
		return out, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return out, res.Err
		}
		return res.Val.(T), nil
	}
}

func refresh[T any](ctx context.Context, s *catalogService, key string, load func(context.Context) (T, error)) error {
	_, err := store(ctx, s, key, load)
	return err
}

func store[T any](ctx context.Context, s *catalogService, key string, load func(context.Context) (T, error)) (T, error) {
	val, err := load(ctx)
	if err != nil {
		return val, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, val, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}
	return val, nil
}
