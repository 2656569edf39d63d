package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/brokerpulse/internal/analytics"
	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/guttosm/brokerpulse/internal/logger"
	"github.com/guttosm/brokerpulse/internal/source"
)

// DashboardService fetches the raw tables and runs the analytics pipeline
// for one dashboard view per call.
type DashboardService interface {
	Leaderboard(ctx context.Context, q analytics.LeaderboardQuery) (*analytics.Leaderboard, error)
	TimeSeries(ctx context.Context, q analytics.TimeSeriesQuery) (*analytics.TimeSeries, error)
	ActiveAgents(ctx context.Context, q analytics.ActiveAgentsQuery) (*analytics.ActiveAgents, error)
	Entities(ctx context.Context, level analytics.Level) ([]string, analytics.NormalizeReport, error)
}

type dashboardService struct {
	src source.DataSource
}

func NewDashboardService(src source.DataSource) DashboardService {
	return &dashboardService{src: src}
}

func (s *dashboardService) Leaderboard(ctx context.Context, q analytics.LeaderboardQuery) (*analytics.Leaderboard, error) {
	metric, err := analytics.ParseMetric(string(q.Metric))
	if err != nil {
		return nil, err
	}
	tx, hc, err := s.fetch(ctx, metric.NeedsHeadcounts())
	if err != nil {
		return nil, err
	}
	lb, err := analytics.ComputeLeaderboard(tx, hc, q)
	if err != nil {
		return nil, err
	}
	logReport(ctx, "leaderboard", lb.Report)
	return lb, nil
}

func (s *dashboardService) TimeSeries(ctx context.Context, q analytics.TimeSeriesQuery) (*analytics.TimeSeries, error) {
	metric, err := analytics.ParseMetric(string(q.Metric))
	if err != nil {
		return nil, err
	}
	tx, hc, err := s.fetch(ctx, metric.NeedsHeadcounts())
	if err != nil {
		return nil, err
	}
	ts, err := analytics.ComputeTimeSeries(tx, hc, q)
	if err != nil {
		return nil, err
	}
	logReport(ctx, "timeseries", ts.Report)
	return ts, nil
}

func (s *dashboardService) ActiveAgents(ctx context.Context, q analytics.ActiveAgentsQuery) (*analytics.ActiveAgents, error) {
	tx, _, err := s.fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	aa, err := analytics.ComputeActiveAgents(tx, q)
	if err != nil {
		return nil, err
	}
	logReport(ctx, "active_agents", aa.Report)
	return aa, nil
}

func (s *dashboardService) Entities(ctx context.Context, level analytics.Level) ([]string, analytics.NormalizeReport, error) {
	tx, _, err := s.fetch(ctx, false)
	if err != nil {
		return nil, analytics.NormalizeReport{}, err
	}
	names, report, err := analytics.ListEntities(tx, level)
	if err != nil {
		return nil, report, err
	}
	logReport(ctx, "entities", report)
	return names, report, nil
}

// fetch loads the transactions and, when needed, the headcounts in parallel.
// Either failure cancels the other fetch.
func (s *dashboardService) fetch(ctx context.Context, withHeadcounts bool) (tx, hc models.Table, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tx, err = s.src.FetchTransactions(gctx); err != nil {
			return fmt.Errorf("transactions: %w", err)
		}
		return nil
	})
	if withHeadcounts {
		g.Go(func() error {
			var err error
			if hc, err = s.src.FetchHeadcounts(gctx); err != nil {
				return fmt.Errorf("headcounts: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("data source fetch failed")
		return nil, nil, err
	}
	return tx, hc, nil
}

func logReport(ctx context.Context, view string, r analytics.NormalizeReport) {
	log := logger.FromContext(ctx)
	log.Info().Str("view", view).
		Int("transactions_in", r.TransactionsIn).
		Int("transactions_kept", r.TransactionsKept).
		Int("headcounts_kept", r.HeadcountsKept).
		Msg("normalized")

	if r.DroppedInvalidDate > 0 || r.AmountsMissing > 0 || r.AmountsInvalid > 0 || r.HeadcountsDropped > 0 {
		log.Warn().Str("view", view).
			Int("dropped_invalid_date", r.DroppedInvalidDate).
			Int("amounts_missing", r.AmountsMissing).
			Int("amounts_invalid", r.AmountsInvalid).
			Int("headcounts_dropped", r.HeadcountsDropped).
			Msg("malformed rows")
	}
}
