package analytics

import (
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// MonthRange returns the first day of every month from start's month to end's
// month, inclusive. It returns nil when end falls in an earlier month than start.
func MonthRange(start, end time.Time) []time.Time {
	first, last := MonthOf(start), MonthOf(end)
	if last.Before(first) {
		return nil
	}
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// Densify expands sparse cells into a grid holding exactly one cell for every
// (entity, month) pair of entities × months. Pairs with no matching cell are
// zero-filled; cells outside the requested pairs are ignored.
//
// Entities are used verbatim and in order, duplicates included, so the grid
// size is always len(entities)*len(months).
func Densify(cells []models.AggregateCell, entities []string, months []time.Time) models.DenseGrid {
	index := make(map[cellKey]models.AggregateCell, len(cells))
	for _, c := range cells {
		index[keyOf(c.Entity, c.Month)] = c
	}

	normMonths := make([]time.Time, len(months))
	for j, m := range months {
		normMonths[j] = MonthOf(m)
	}

	grid := models.DenseGrid{
		Entities: append([]string(nil), entities...),
		Months:   normMonths,
		Cells:    make([]models.AggregateCell, 0, len(entities)*len(months)),
	}
	for _, e := range entities {
		for _, m := range normMonths {
			c, ok := index[keyOf(e, m)]
			if !ok {
				c = models.AggregateCell{Entity: e, Month: m, GrossAmount: decimal.Zero}
			}
			grid.Cells = append(grid.Cells, c)
		}
	}
	return grid
}
