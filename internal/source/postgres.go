package source

import (
	"context"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/guttosm/brokerpulse/internal/storage"
)

// PostgresSource reads the tables loaded by the ingestion command.
type PostgresSource struct {
	repo storage.Repository
}

// NewPostgresSource wraps repo.
func NewPostgresSource(repo storage.Repository) *PostgresSource {
	return &PostgresSource{repo: repo}
}

func (s *PostgresSource) FetchTransactions(ctx context.Context) (models.Table, error) {
	t, err := s.repo.FetchTransactions(ctx)
	if err != nil {
		return nil, unavailable(models.KindTransactions, err)
	}
	return t, nil
}

func (s *PostgresSource) FetchHeadcounts(ctx context.Context) (models.Table, error) {
	t, err := s.repo.FetchHeadcounts(ctx)
	if err != nil {
		return nil, unavailable(models.KindHeadcounts, err)
	}
	return t, nil
}

func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
