package analytics

import (
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// MarketShare returns, for every cell of grid, the entity's deal count as a
// percentage of all transactions closed in that month. Months with no
// transactions yield 0.
//
// Deal counts count sides, so the shares of one month can add up to more
// than 100.
func MarketShare(grid models.DenseGrid, totals map[time.Time]int64) []float64 {
	shares := make([]float64, len(grid.Cells))
	for i, c := range grid.Cells {
		total := totals[MonthOf(c.Month)]
		if total == 0 {
			continue
		}
		shares[i] = float64(c.DealCount) / float64(total) * 100
	}
	return shares
}
