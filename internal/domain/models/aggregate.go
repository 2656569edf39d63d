package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateCell holds the totals for one entity in one calendar month.
//
// DealCount counts sides of deals worked (ListingCount + BuyerCount), so a
// self-deal adds two. GrossAmount is the reconciled sales volume touched by
// the entity in that month.
type AggregateCell struct {
	Entity       string          `json:"entity"`
	Month        time.Time       `json:"month"`
	DealCount    int64           `json:"deal_count"`
	ListingCount int64           `json:"listing_count"`
	BuyerCount   int64           `json:"buyer_count"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
}

// DenseGrid is a complete entities × months matrix of AggregateCells.
//
// Cells are ordered entity-major: every month of Entities[0] first, then
// every month of Entities[1], and so on. len(Cells) is always
// len(Entities)*len(Months).
type DenseGrid struct {
	Entities []string        `json:"entities"`
	Months   []time.Time     `json:"months"`
	Cells    []AggregateCell `json:"cells"`
}

// At returns the cell for entity index i and month index j.
func (g DenseGrid) At(i, j int) AggregateCell {
	return g.Cells[i*len(g.Months)+j]
}

// RatioRow is a DenseGrid row joined with the headcount of the same month.
//
// DealsPerAgent is DealCount/AgentCount when AgentCount > 0 and 0 otherwise.
// HasHeadcount tells a recorded count apart from a missing one.
type RatioRow struct {
	Entity        string    `json:"entity"`
	Month         time.Time `json:"month"`
	DealCount     int64     `json:"deal_count"`
	AgentCount    float64   `json:"agent_count"`
	HasHeadcount  bool      `json:"has_headcount"`
	DealsPerAgent float64   `json:"deals_per_agent"`
}
