package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when no cached copy exists.
var ErrMiss = errors.New("redis: cache miss")

// TableCache stores raw tables as JSON strings.
//
// Key schema:
//
//	brokerpulse:table:{name} - JSON array of records
type TableCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTableCache returns a TableCache whose entries expire after ttl.
func NewTableCache(c *Client, ttl time.Duration) *TableCache {
	return &TableCache{rdb: c.rdb, ttl: ttl}
}

// TableKey returns the key under which the table name is cached.
func TableKey(name string) string { return "brokerpulse:table:" + name }

// Get returns the cached copy of the table name, or ErrMiss.
func (tc *TableCache) Get(ctx context.Context, name string) (models.Table, error) {
	data, err := tc.rdb.Get(ctx, TableKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis: get table %s: %w", name, err)
	}
	return decodeTable(name, data)
}

// Set caches t under name.
func (tc *TableCache) Set(ctx context.Context, name string, t models.Table) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("redis: marshal table %s: %w", name, err)
	}
	if err := tc.rdb.Set(ctx, TableKey(name), data, tc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set table %s: %w", name, err)
	}
	return nil
}

// Invalidate drops the cached copies of the named tables.
func (tc *TableCache) Invalidate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = TableKey(n)
	}
	if err := tc.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis: invalidate %v: %w", names, err)
	}
	return nil
}

func decodeTable(name string, data []byte) (models.Table, error) {
	var t models.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("redis: unmarshal table %s: %w", name, err)
	}
	return t, nil
}
