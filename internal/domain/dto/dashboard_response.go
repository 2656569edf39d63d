package dto

import (
	"github.com/guttosm/brokerpulse/internal/analytics"
)

const monthLayout = "2006-01"

// ReportResponse surfaces how many raw rows normalization kept or dropped.
type ReportResponse struct {
	TransactionsIn     int `json:"transactions_in" example:"1200"`
	TransactionsKept   int `json:"transactions_kept" example:"1195"`
	DroppedInvalidDate int `json:"dropped_invalid_date" example:"5"`
	AmountsMissing     int `json:"amounts_missing" example:"2"`
	AmountsInvalid     int `json:"amounts_invalid" example:"1"`
	HeadcountsIn       int `json:"headcounts_in" example:"48"`
	HeadcountsKept     int `json:"headcounts_kept" example:"48"`
	HeadcountsDropped  int `json:"headcounts_dropped" example:"0"`
}

// LeaderboardEntry is one ranked entity.
type LeaderboardEntry struct {
	Rank   int     `json:"rank" example:"1"`
	Entity string  `json:"entity" example:"royal lepage noralta real estate"`
	Value  float64 `json:"value" example:"42"`
	Pinned bool    `json:"pinned" example:"false"`
	Firm   string  `json:"firm,omitempty" example:"royal lepage noralta real estate"`
}

// LeaderboardResponse is returned by GET /api/v1/leaderboard.
type LeaderboardResponse struct {
	Metric  string             `json:"metric" example:"deal_count"`
	Level   string             `json:"level" example:"firm"`
	Side    string             `json:"side" example:"combined"`
	Start   string             `json:"start" example:"2024-01-01"`
	End     string             `json:"end" example:"2024-12-31"`
	Entries []LeaderboardEntry `json:"entries"`
	Report  ReportResponse     `json:"report"`
}

// SeriesPoint is the value of one entity in one month.
type SeriesPoint struct {
	Month         string   `json:"month" example:"2024-01"`
	Value         float64  `json:"value" example:"3"`
	DealCount     int64    `json:"deal_count" example:"3"`
	ListingCount  int64    `json:"listing_count" example:"2"`
	BuyerCount    int64    `json:"buyer_count" example:"1"`
	GrossAmount   float64  `json:"gross_amount" example:"200000"`
	AgentCount    *float64 `json:"agent_count,omitempty" example:"2"`
	DealsPerAgent *float64 `json:"deals_per_agent,omitempty" example:"1.5"`
}

// Series holds every month of one entity.
type Series struct {
	Entity string        `json:"entity" example:"acme realty"`
	Points []SeriesPoint `json:"points"`
}

// TimeSeriesResponse is returned by GET /api/v1/timeseries.
type TimeSeriesResponse struct {
	Metric string         `json:"metric" example:"deal_count"`
	Level  string         `json:"level" example:"firm"`
	Side   string         `json:"side" example:"combined"`
	Months []string       `json:"months"`
	Series []Series       `json:"series"`
	Report ReportResponse `json:"report"`
}

// ActiveAgentsRow holds the active agent counts of one firm, one per month.
type ActiveAgentsRow struct {
	Entity string `json:"entity" example:"acme realty"`
	Agents []int  `json:"agents"`
}

// ActiveAgentsResponse is returned by GET /api/v1/active-agents.
type ActiveAgentsResponse struct {
	Months []string          `json:"months"`
	Rows   []ActiveAgentsRow `json:"rows"`
	Report ReportResponse    `json:"report"`
}

// EntitiesResponse is returned by GET /api/v1/entities.
type EntitiesResponse struct {
	Level    string         `json:"level" example:"firm"`
	Entities []string       `json:"entities"`
	Report   ReportResponse `json:"report"`
}

// FromReport maps a normalization report.
func FromReport(r analytics.NormalizeReport) ReportResponse {
	return ReportResponse(r)
}

// FromLeaderboard maps a computed leaderboard to its API shape.
func FromLeaderboard(lb *analytics.Leaderboard) LeaderboardResponse {
	resp := LeaderboardResponse{
		Metric:  string(lb.Metric),
		Level:   string(lb.Level),
		Side:    string(lb.Side),
		Start:   lb.Start.Format("2006-01-02"),
		End:     lb.End.Format("2006-01-02"),
		Entries: make([]LeaderboardEntry, 0, len(lb.Entries)),
		Report:  FromReport(lb.Report),
	}
	for _, e := range lb.Entries {
		resp.Entries = append(resp.Entries, LeaderboardEntry{
			Rank:   e.Rank,
			Entity: e.Entity,
			Value:  e.Value,
			Pinned: e.Pinned,
			Firm:   lb.Firms[e.Entity],
		})
	}
	return resp
}

// FromTimeSeries regroups the grid cells of ts into one Series per entity.
func FromTimeSeries(ts *analytics.TimeSeries) TimeSeriesResponse {
	g := ts.Grid
	resp := TimeSeriesResponse{
		Metric: string(ts.Metric),
		Level:  string(ts.Level),
		Side:   string(ts.Side),
		Months: make([]string, len(g.Months)),
		Series: make([]Series, 0, len(g.Entities)),
		Report: FromReport(ts.Report),
	}
	for j, m := range g.Months {
		resp.Months[j] = m.Format(monthLayout)
	}
	for i, e := range g.Entities {
		s := Series{Entity: e, Points: make([]SeriesPoint, 0, len(g.Months))}
		for j := range g.Months {
			idx := i*len(g.Months) + j
			c := g.Cells[idx]
			p := SeriesPoint{
				Month:        resp.Months[j],
				Value:        ts.Values[idx],
				DealCount:    c.DealCount,
				ListingCount: c.ListingCount,
				BuyerCount:   c.BuyerCount,
				GrossAmount:  c.GrossAmount.InexactFloat64(),
			}
			if ts.Ratios != nil {
				r := ts.Ratios[idx]
				p.DealsPerAgent = &r.DealsPerAgent
				if r.HasHeadcount {
					p.AgentCount = &r.AgentCount
				}
			}
			s.Points = append(s.Points, p)
		}
		resp.Series = append(resp.Series, s)
	}
	return resp
}

// FromActiveAgents maps the active agents table, one row per firm.
func FromActiveAgents(aa *analytics.ActiveAgents) ActiveAgentsResponse {
	resp := ActiveAgentsResponse{
		Months: make([]string, len(aa.Months)),
		Rows:   make([]ActiveAgentsRow, 0, len(aa.Entities)),
		Report: FromReport(aa.Report),
	}
	for j, m := range aa.Months {
		resp.Months[j] = m.Format(monthLayout)
	}
	for i, e := range aa.Entities {
		row := ActiveAgentsRow{Entity: e, Agents: make([]int, len(aa.Months))}
		for j := range aa.Months {
			row.Agents[j] = aa.Cells[i*len(aa.Months)+j].Agents
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}
