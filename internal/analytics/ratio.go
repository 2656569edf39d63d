package analytics

import "github.com/guttosm/brokerpulse/internal/domain/models"

// JoinHeadcounts joins every grid cell with the headcount recorded for the
// same entity and month. There is no nearest-month fallback.
//
// A cell with no headcount, or a recorded headcount of zero, gets
// DealsPerAgent 0. Rows follow the grid's cell order.
func JoinHeadcounts(grid models.DenseGrid, headcounts []models.HeadcountRecord) []models.RatioRow {
	counts := make(map[cellKey]float64, len(headcounts))
	for _, h := range headcounts {
		counts[keyOf(h.Entity, h.Month)] = h.AgentCount
	}

	rows := make([]models.RatioRow, 0, len(grid.Cells))
	for _, c := range grid.Cells {
		row := models.RatioRow{
			Entity:    c.Entity,
			Month:     c.Month,
			DealCount: c.DealCount,
		}
		if n, ok := counts[keyOf(c.Entity, c.Month)]; ok {
			row.AgentCount = n
			row.HasHeadcount = true
		}
		if row.AgentCount > 0 {
			row.DealsPerAgent = float64(row.DealCount) / row.AgentCount
		}
		rows = append(rows, row)
	}
	return rows
}
