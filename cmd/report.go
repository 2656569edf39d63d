package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/guttosm/brokerpulse/config"
	"github.com/guttosm/brokerpulse/internal/analytics"
	"github.com/guttosm/brokerpulse/internal/app"
	"github.com/guttosm/brokerpulse/internal/domain/dto"
	"github.com/guttosm/brokerpulse/internal/logger"
	"github.com/guttosm/brokerpulse/internal/service"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// viewFlags are shared by the leaderboard and timeseries commands.
type viewFlags struct {
	metric      string
	level       string
	side        string
	start       string
	end         string
	topK        int
	pinned      string
	cities      stringList
	communities stringList
	buildings   stringList
	properties  stringList
	firms       stringList

	out io.Writer
}

func (v *viewFlags) register(f *flag.FlagSet) {
	f.StringVar(&v.metric, "metric", string(analytics.MetricDealCount), "deal_count, gross_amount, deals_per_agent or market_share")
	f.StringVar(&v.level, "level", string(analytics.LevelFirm), "firm or agent")
	f.StringVar(&v.side, "side", string(analytics.SideCombined), "combined, listing or buyer")
	f.StringVar(&v.start, "start", "", "Start date YYYY-MM-DD (defaults to the first sold date)")
	f.StringVar(&v.end, "end", "", "End date YYYY-MM-DD (defaults to the last sold date)")
	f.IntVar(&v.topK, "top-k", config.AppConfig.Dashboard.TopK, "Entities before the pinned one")
	f.StringVar(&v.pinned, "pinned", config.AppConfig.Dashboard.PinnedEntity, "Entity always included")
	f.Var(&v.cities, "city", "Area/city filter (repeatable)")
	f.Var(&v.communities, "community", "Community filter (repeatable)")
	f.Var(&v.buildings, "building-type", "Building type filter (repeatable)")
	f.Var(&v.properties, "property-type", "Property type filter (repeatable)")
	f.Var(&v.firms, "firm", "Firm filter (repeatable)")
}

func (v *viewFlags) period() (start, end time.Time, err error) {
	if start, err = parseDate(v.start); err != nil {
		return start, end, fmt.Errorf("invalid -start: %w", err)
	}
	if end, err = parseDate(v.end); err != nil {
		return start, end, fmt.Errorf("invalid -end: %w", err)
	}
	return start, end, nil
}

func (v *viewFlags) filter() analytics.Filter {
	return analytics.Filter{
		AreaCities:    v.cities,
		Communities:   v.communities,
		BuildingTypes: v.buildings,
		PropertyTypes: v.properties,
		Firms:         v.firms,
	}
}

func (v *viewFlags) writer() io.Writer {
	if v.out == nil {
		return os.Stdout
	}
	return v.out
}

func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// withService builds the configured data source and runs fn with a
// dashboard service on top of it.
func withService(ctx context.Context, fn func(service.DashboardService) (any, error), out io.Writer) subcommands.ExitStatus {
	src, cleanup, err := app.NewDataSource(ctx, config.AppConfig)
	if err != nil {
		logger.L().Error().Err(err).Msg("data source init error")
		return subcommands.ExitFailure
	}
	defer cleanup()

	resp, err := fn(service.NewDashboardService(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type leaderboardCmd struct {
	viewFlags
}

func (*leaderboardCmd) Name() string     { return "leaderboard" }
func (*leaderboardCmd) Synopsis() string { return "print a leaderboard as JSON" }
func (*leaderboardCmd) Usage() string {
	return `brokerpulse leaderboard [-metric m] [-level l] [-side s] [-start d] [-end d] [-top-k n] [-pinned name]

  Ranks firms or agents over the period and prints the result as JSON.
`
}

func (c *leaderboardCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *leaderboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, end, err := c.period()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	q := analytics.LeaderboardQuery{
		Metric: analytics.Metric(c.metric),
		Level:  analytics.Level(c.level),
		Side:   analytics.Side(c.side),
		Start:  start,
		End:    end,
		TopK:   c.topK,
		Pinned: c.pinned,
		Filter: c.filter(),
	}
	return withService(ctx, func(svc service.DashboardService) (any, error) {
		lb, err := svc.Leaderboard(ctx, q)
		if err != nil {
			return nil, err
		}
		return dto.FromLeaderboard(lb), nil
	}, c.writer())
}

type timeseriesCmd struct {
	viewFlags
	entities stringList
}

func (*timeseriesCmd) Name() string     { return "timeseries" }
func (*timeseriesCmd) Synopsis() string { return "print a monthly time series as JSON" }
func (*timeseriesCmd) Usage() string {
	return `brokerpulse timeseries [-metric m] [-start d] [-end d] [-entity name ...]

  Prints one value per entity and month. Without -entity the leaderboard
  entities are used.
`
}

func (c *timeseriesCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.Var(&c.entities, "entity", "Entity to plot (repeatable)")
}

func (c *timeseriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, end, err := c.period()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	q := analytics.TimeSeriesQuery{
		Metric:   analytics.Metric(c.metric),
		Level:    analytics.Level(c.level),
		Side:     analytics.Side(c.side),
		Start:    start,
		End:      end,
		Entities: c.entities,
		TopK:     c.topK,
		Pinned:   c.pinned,
		Filter:   c.filter(),
	}
	return withService(ctx, func(svc service.DashboardService) (any, error) {
		ts, err := svc.TimeSeries(ctx, q)
		if err != nil {
			return nil, err
		}
		return dto.FromTimeSeries(ts), nil
	}, c.writer())
}
