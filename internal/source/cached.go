package source

import (
	"context"
	"errors"

	"github.com/guttosm/brokerpulse/internal/cache/redis"
	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/guttosm/brokerpulse/internal/logger"
)

// TableCache is satisfied by *redis.TableCache.
type TableCache interface {
	Get(ctx context.Context, name string) (models.Table, error)
	Set(ctx context.Context, name string, t models.Table) error
}

// CachedSource is a read-through cache in front of another DataSource.
// Cache errors are logged and bypassed; only the wrapped source can fail a fetch.
type CachedSource struct {
	next  DataSource
	cache TableCache
}

// NewCachedSource decorates next with cache.
func NewCachedSource(next DataSource, cache TableCache) *CachedSource {
	return &CachedSource{next: next, cache: cache}
}

func (s *CachedSource) FetchTransactions(ctx context.Context) (models.Table, error) {
	return s.fetch(ctx, models.KindTransactions, s.next.FetchTransactions)
}

func (s *CachedSource) FetchHeadcounts(ctx context.Context) (models.Table, error) {
	return s.fetch(ctx, models.KindHeadcounts, s.next.FetchHeadcounts)
}

func (s *CachedSource) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *CachedSource) fetch(ctx context.Context, kind models.TableKind, load func(context.Context) (models.Table, error)) (models.Table, error) {
	log := logger.FromContext(ctx)
	name := string(kind)

	t, err := s.cache.Get(ctx, name)
	switch {
	case err == nil:
		log.Debug().Str("table", name).Int("rows", len(t)).Msg("cache hit")
		return t, nil
	case errors.Is(err, redis.ErrMiss):
		log.Debug().Str("table", name).Msg("cache miss")
	default:
		log.Warn().Str("table", name).Err(err).Msg("cache read failed")
	}

	t, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, name, t); err != nil {
		log.Warn().Str("table", name).Err(err).Msg("cache write failed")
	}
	return t, nil
}
