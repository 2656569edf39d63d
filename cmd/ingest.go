package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/guttosm/brokerpulse/config"
	"github.com/guttosm/brokerpulse/internal/app"
	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/guttosm/brokerpulse/internal/ingestion"
	"github.com/guttosm/brokerpulse/internal/logger"
	"github.com/guttosm/brokerpulse/internal/storage"
)

type ingestCmd struct {
	dir      string
	parallel int
	force    bool
}

func (*ingestCmd) Name() string     { return "ingest" }
func (*ingestCmd) Synopsis() string { return "load CSV exports into Postgres" }
func (*ingestCmd) Usage() string {
	return `brokerpulse ingest [-dir <dir>] [-parallel n] [-force]

  Loads every transaction and headcount CSV export found in dir.
  Files already loaded with the same content are skipped unless -force is set.
`
}

func (c *ingestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", config.AppConfig.Source.Dir, "Directory with .csv exports")
	f.IntVar(&c.parallel, "parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	f.BoolVar(&c.force, "force", false, "Reload files even if already ingested (deletes rows previously loaded from them)")
}

func (c *ingestCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger.L().Info().Str("dir", c.dir).Msg("running ingestion")

	// Direct DB connection for ingestion
	db, err := app.InitPostgres(config.AppConfig)
	if err != nil {
		logger.L().Error().Err(err).Msg("db connect error")
		return subcommands.ExitFailure
	}
	defer func() { _ = db.Close() }()

	if err := ingestion.ProcessDirectory(ctx, c.dir, storage.NewRepository(db), c.parallel, c.force); err != nil {
		logger.L().Error().Err(err).Msg("ingestion failed")
		return subcommands.ExitFailure
	}

	invalidateCache(ctx, config.AppConfig.Redis)
	logger.L().Info().Msg("ingestion completed successfully")
	return subcommands.ExitSuccess
}

// invalidateCache drops cached tables so the API serves the new rows
// before the TTL expires. Failures only warn.
func invalidateCache(ctx context.Context, cfg config.RedisConfig) {
	if !cfg.Enabled() {
		return
	}
	cache, closeCache, err := app.TableCache(ctx, cfg)
	if err != nil {
		logger.L().Warn().Err(err).Msg("cache not invalidated")
		return
	}
	defer closeCache()
	if err := cache.Invalidate(ctx, string(models.KindTransactions), string(models.KindHeadcounts)); err != nil {
		logger.L().Warn().Err(err).Msg("cache not invalidated")
	}
}
