package analytics

import "strings"

// Metric selects the per-entity value a view ranks or plots.
type Metric string

const (
	MetricDealCount     Metric = "deal_count"
	MetricGrossAmount   Metric = "gross_amount"
	MetricDealsPerAgent Metric = "deals_per_agent"
	MetricMarketShare   Metric = "market_share"
)

// NeedsHeadcounts reports whether computing m requires the headcount table.
func (m Metric) NeedsHeadcounts() bool { return m == MetricDealsPerAgent }

// Level selects whether entities are firms (offices) or individual agents.
type Level string

const (
	LevelFirm  Level = "firm"
	LevelAgent Level = "agent"
)

// Side selects which side of each transaction contributes to a view.
type Side string

const (
	SideCombined Side = "combined"
	SideListing  Side = "listing"
	SideBuyer    Side = "buyer"
)

// ParseMetric maps user input to a Metric. The empty string means deal_count.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MetricDealCount, nil
	case MetricDealCount, MetricGrossAmount, MetricDealsPerAgent, MetricMarketShare:
		return m, nil
	default:
		return "", invalidQuery("unknown metric %q", s)
	}
}

// ParseLevel maps user input to a Level. The empty string means firm.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LevelFirm, nil
	case LevelFirm, LevelAgent:
		return l, nil
	default:
		return "", invalidQuery("unknown level %q", s)
	}
}

// ParseSide maps user input to a Side. The empty string means combined.
func ParseSide(s string) (Side, error) {
	switch v := Side(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SideCombined, nil
	case SideCombined, SideListing, SideBuyer:
		return v, nil
	default:
		return "", invalidQuery("unknown side %q", s)
	}
}
