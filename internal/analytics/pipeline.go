package analytics

import (
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// LeaderboardQuery describes one leaderboard view.
//
// A zero Start or End falls back to the earliest or latest sold date in the
// data. Zero-valued Metric, Level and Side mean deal_count, firm and combined.
type LeaderboardQuery struct {
	Metric Metric
	Level  Level
	Side   Side
	Start  time.Time
	End    time.Time
	TopK   int
	Pinned string
	Filter Filter
}

// Leaderboard is the ranked result of a LeaderboardQuery. Values are summed
// over every month of the period.
type Leaderboard struct {
	Metric  Metric            `json:"metric"`
	Level   Level             `json:"level"`
	Side    Side              `json:"side"`
	Start   time.Time         `json:"start"`
	End     time.Time         `json:"end"`
	Entries []Ranked          `json:"entries"`
	Firms   map[string]string `json:"firms,omitempty"`
	Report  NormalizeReport   `json:"report"`
}

// TimeSeriesQuery describes one time-series view. When Entities is empty the
// series covers the TopK + Pinned entities of the same metric.
type TimeSeriesQuery struct {
	Metric   Metric
	Level    Level
	Side     Side
	Start    time.Time
	End      time.Time
	Entities []string
	TopK     int
	Pinned   string
	Filter   Filter
}

// TimeSeries holds a dense grid plus the metric value of every cell.
// Values[i] belongs to Grid.Cells[i]. Ratios is only set for deals_per_agent.
type TimeSeries struct {
	Metric Metric            `json:"metric"`
	Level  Level             `json:"level"`
	Side   Side              `json:"side"`
	Grid   models.DenseGrid  `json:"grid"`
	Values []float64         `json:"values"`
	Ratios []models.RatioRow `json:"ratios,omitempty"`
	Report NormalizeReport   `json:"report"`
}

// ActiveAgentsQuery describes an active-agents table. When Entities is empty
// the TopK + Pinned firms by deal count are used.
type ActiveAgentsQuery struct {
	Start    time.Time
	End      time.Time
	Entities []string
	TopK     int
	Pinned   string
	Filter   Filter
}

// ActiveAgents is the firms × months table of distinct active agents.
type ActiveAgents struct {
	Entities []string          `json:"entities"`
	Months   []time.Time       `json:"months"`
	Cells    []ActiveAgentCell `json:"cells"`
	Report   NormalizeReport   `json:"report"`
}

// dataset is the normalized, filtered input of one request.
type dataset struct {
	metric     Metric
	level      Level
	side       Side
	start, end time.Time
	months     []time.Time
	scoped     []models.Transaction // period and category filters applied
	txs        []models.Transaction // scoped plus firm filter
	headcounts []models.HeadcountRecord
	report     NormalizeReport
	cells      []models.AggregateCell
}

func prepare(transactions, headcounts models.Table, metric Metric, level Level, side Side,
	start, end time.Time, topK int, filter Filter) (*dataset, error) {

	var err error
	if metric, err = ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	if level, err = ParseLevel(string(level)); err != nil {
		return nil, err
	}
	if side, err = ParseSide(string(side)); err != nil {
		return nil, err
	}
	if topK < 0 {
		return nil, invalidQuery("top_k must not be negative, got %d", topK)
	}
	if metric.NeedsHeadcounts() && level != LevelFirm {
		return nil, invalidQuery("%s is only available at firm level", metric)
	}
	if !start.IsZero() && !end.IsZero() && dateOnly(start).After(dateOnly(end)) {
		return nil, invalidQuery("start %s is after end %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	txs, report := NormalizeTransactions(transactions)
	if len(txs) == 0 {
		return nil, &NoDataError{Table: "transactions"}
	}

	d := &dataset{metric: metric, level: level, side: side, report: report}
	if metric.NeedsHeadcounts() {
		d.headcounts = NormalizeHeadcounts(headcounts, &d.report)
		if len(d.headcounts) == 0 {
			return nil, &NoDataError{Table: "headcounts"}
		}
	}

	d.start, d.end = dateOnly(start), dateOnly(end)
	if start.IsZero() || end.IsZero() {
		first, last := span(txs)
		if start.IsZero() {
			d.start = first
		}
		if end.IsZero() {
			d.end = last
		}
		if d.start.After(d.end) {
			return nil, invalidQuery("start %s is after end %s", d.start.Format(time.DateOnly), d.end.Format(time.DateOnly))
		}
	}

	d.months = MonthRange(d.start, d.end)
	d.scoped = filter.applyCategories(inPeriod(txs, d.start, d.end))
	d.txs = filter.applyFirms(d.scoped)
	d.cells = Aggregate(d.txs, level, side)
	return d, nil
}

// span returns the earliest and latest sold dates of txs.
func span(txs []models.Transaction) (first, last time.Time) {
	for i, tx := range txs {
		if i == 0 || tx.ClosedAt.Before(first) {
			first = tx.ClosedAt
		}
		if i == 0 || tx.ClosedAt.After(last) {
			last = tx.ClosedAt
		}
	}
	return first, last
}

// universe lists the entities a leaderboard ranks. At firm level a firm
// filter restricts it to the requested firms.
func (d *dataset) universe(filter Filter) []string {
	entities := ResolveEntities(d.txs, d.level)
	firms := newNameSet(filter.Firms)
	if d.level != LevelFirm || firms == nil {
		return entities
	}
	kept := entities[:0]
	for _, e := range entities {
		if firms.match(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// values evaluates the dataset's metric on every cell of grid.
func (d *dataset) values(grid models.DenseGrid) ([]float64, []models.RatioRow) {
	switch d.metric {
	case MetricGrossAmount:
		out := make([]float64, len(grid.Cells))
		for i, c := range grid.Cells {
			out[i] = c.GrossAmount.InexactFloat64()
		}
		return out, nil
	case MetricDealsPerAgent:
		rows := JoinHeadcounts(grid, d.headcounts)
		out := make([]float64, len(rows))
		for i, r := range rows {
			out[i] = r.DealsPerAgent
		}
		return out, rows
	case MetricMarketShare:
		return MarketShare(grid, MonthlyTotals(d.scoped)), nil
	default:
		out := make([]float64, len(grid.Cells))
		for i, c := range grid.Cells {
			out[i] = float64(c.DealCount)
		}
		return out, nil
	}
}

func (d *dataset) rank(filter Filter, topK int, pinned string) []Ranked {
	entities := d.universe(filter)
	grid := Densify(d.cells, entities, d.months)
	values, _ := d.values(grid)

	totals := make(map[string]float64, len(entities))
	for i, c := range grid.Cells {
		totals[c.Entity] += values[i]
	}
	return Rank(totals, topK, pinned)
}

// ComputeLeaderboard ranks entities by q.Metric summed over the period and
// returns the top q.TopK plus the pinned entity.
//
// It returns a *NoDataError when the transactions normalize to nothing, or
// when the metric needs headcounts and those normalize to nothing. An empty
// period is not an error.
func ComputeLeaderboard(transactions, headcounts models.Table, q LeaderboardQuery) (*Leaderboard, error) {
	d, err := prepare(transactions, headcounts, q.Metric, q.Level, q.Side, q.Start, q.End, q.TopK, q.Filter)
	if err != nil {
		return nil, err
	}

	lb := &Leaderboard{
		Metric:  d.metric,
		Level:   d.level,
		Side:    d.side,
		Start:   d.start,
		End:     d.end,
		Entries: d.rank(q.Filter, q.TopK, q.Pinned),
		Report:  d.report,
	}
	if d.level == LevelAgent {
		all := AgentFirms(d.txs)
		lb.Firms = make(map[string]string, len(lb.Entries))
		for _, e := range lb.Entries {
			if f, ok := all[e.Entity]; ok {
				lb.Firms[e.Entity] = f
			}
		}
	}
	return lb, nil
}

// ComputeTimeSeries builds the dense entities × months grid of q.Metric.
//
// Named entities are canonicalized and kept in the given order; an entity
// with no activity still gets a zero-filled row.
func ComputeTimeSeries(transactions, headcounts models.Table, q TimeSeriesQuery) (*TimeSeries, error) {
	d, err := prepare(transactions, headcounts, q.Metric, q.Level, q.Side, q.Start, q.End, q.TopK, q.Filter)
	if err != nil {
		return nil, err
	}

	entities := canonicalList(q.Entities)
	if len(entities) == 0 {
		entities = Entities(d.rank(q.Filter, q.TopK, q.Pinned))
	}

	grid := Densify(d.cells, entities, d.months)
	values, ratios := d.values(grid)
	return &TimeSeries{
		Metric: d.metric,
		Level:  d.level,
		Side:   d.side,
		Grid:   grid,
		Values: values,
		Ratios: ratios,
		Report: d.report,
	}, nil
}

// ComputeActiveAgents counts distinct active agents per firm and month.
func ComputeActiveAgents(transactions models.Table, q ActiveAgentsQuery) (*ActiveAgents, error) {
	d, err := prepare(transactions, nil, MetricDealCount, LevelFirm, SideCombined, q.Start, q.End, q.TopK, q.Filter)
	if err != nil {
		return nil, err
	}

	firms := canonicalList(q.Entities)
	if len(firms) == 0 {
		firms = Entities(d.rank(q.Filter, q.TopK, q.Pinned))
	}
	return &ActiveAgents{
		Entities: firms,
		Months:   d.months,
		Cells:    CountActiveAgents(d.txs, firms, d.months),
		Report:   d.report,
	}, nil
}

// ListEntities returns the resolved entity universe of transactions at level.
func ListEntities(transactions models.Table, level Level) ([]string, NormalizeReport, error) {
	level, err := ParseLevel(string(level))
	if err != nil {
		return nil, NormalizeReport{}, err
	}
	txs, report := NormalizeTransactions(transactions)
	if len(txs) == 0 {
		return nil, report, &NoDataError{Table: "transactions"}
	}
	return ResolveEntities(txs, level), report, nil
}

func canonicalList(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if c := CanonicalName(n); c != "" {
			out = append(out, c)
		}
	}
	return out
}
