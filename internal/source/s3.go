package source

import (
	"context"
	"fmt"
	"io"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// ObjectReader is satisfied by *s3blob.Reader.
type ObjectReader interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// HealthChecker is satisfied by *s3blob.Client.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// S3Source reads the two exports as CSV objects from a bucket.
type S3Source struct {
	objects      ObjectReader
	health       HealthChecker
	transactions string
	headcounts   string
}

// NewS3Source reads transactionsKey and headcountsKey through objects.
func NewS3Source(objects ObjectReader, health HealthChecker, transactionsKey, headcountsKey string) *S3Source {
	return &S3Source{objects: objects, health: health, transactions: transactionsKey, headcounts: headcountsKey}
}

func (s *S3Source) FetchTransactions(ctx context.Context) (models.Table, error) {
	return s.read(ctx, models.KindTransactions, s.transactions)
}

func (s *S3Source) FetchHeadcounts(ctx context.Context) (models.Table, error) {
	return s.read(ctx, models.KindHeadcounts, s.headcounts)
}

// Ping checks bucket access.
func (s *S3Source) Ping(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health.Health(ctx)
}

func (s *S3Source) read(ctx context.Context, kind models.TableKind, key string) (models.Table, error) {
	body, err := s.objects.Get(ctx, key)
	if err != nil {
		return nil, unavailable(kind, err)
	}
	defer func() { _ = body.Close() }()

	t, err := ReadCSV(body)
	if err != nil {
		return nil, unavailable(kind, fmt.Errorf("%s: %w", key, err))
	}
	return t, nil
}
