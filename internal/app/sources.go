package app

import (
	"context"
	"fmt"

	"github.com/guttosm/brokerpulse/config"
	s3blob "github.com/guttosm/brokerpulse/internal/blob/s3"
	"github.com/guttosm/brokerpulse/internal/cache/redis"
	"github.com/guttosm/brokerpulse/internal/logger"
	"github.com/guttosm/brokerpulse/internal/source"
	"github.com/guttosm/brokerpulse/internal/storage"
)

// NewDataSource builds the source.DataSource selected by cfg.Source.Kind and,
// when Redis is configured, wraps it in a read-through cache.
//
// The returned cleanup closes every connection that was opened.
func NewDataSource(ctx context.Context, cfg config.Config) (source.DataSource, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var src source.DataSource
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		src = source.NewPostgresSource(storage.NewRepository(db))

	case config.SourceS3:
		client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize s3: %w", err)
		}
		src = source.NewS3Source(s3blob.NewReader(client), client, cfg.Source.TransactionsKey, cfg.Source.HeadcountsKey)

	case config.SourceFile:
		src = source.NewFileSource(cfg.Source.Dir, cfg.Source.TransactionsKey, cfg.Source.HeadcountsKey)

	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	if cfg.Redis.Enabled() {
		cache, err := redisOpener(ctx, cfg.Redis)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		closers = append(closers, cache.close)
		src = source.NewCachedSource(src, cache.tables)
		logger.FromContext(ctx).Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("table cache enabled")
	}

	logger.FromContext(ctx).Info().Str("source", cfg.Source.Kind).Msg("data source ready")
	return src, cleanup, nil
}

// TableCache opens the Redis table cache described by cfg, for callers that
// need to invalidate it after loading new data.
func TableCache(ctx context.Context, cfg config.RedisConfig) (*redis.TableCache, func(), error) {
	c, err := redisOpener(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return c.tables, c.close, nil
}

type redisCache struct {
	tables *redis.TableCache
	close  func()
}

// redisOpener is an indirection for unit testing.
var redisOpener = func(ctx context.Context, cfg config.RedisConfig) (*redisCache, error) {
	client, err := redis.New(ctx, redis.ClientConfig{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		return nil, err
	}
	return &redisCache{
		tables: redis.NewTableCache(client, cfg.TTL),
		close:  func() { _ = client.Close() },
	}, nil
}
