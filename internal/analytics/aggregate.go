package analytics

import (
	"sort"
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// cellKey identifies one (entity, calendar month) bucket.
type cellKey struct {
	entity string
	year   int
	mon    time.Month
}

func keyOf(entity string, month time.Time) cellKey {
	return cellKey{entity: entity, year: month.Year(), mon: month.Month()}
}

func (k cellKey) month() time.Time {
	return time.Date(k.year, k.mon, 1, 0, 0, 0, 0, time.UTC)
}

// MonthOf returns the first day of t's month, in UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Aggregate groups transactions into one AggregateCell per (entity, month)
// that saw at least one contribution.
//
// Each present side adds one to its entity's deal count, so a self-deal counts
// twice. For gross amounts a self-deal credits its entity with half the
// amount; distinct entities on the two sides are each credited the full
// amount. With a single side selected, only that side contributes and the
// amount is never halved. Missing amounts add nothing to gross totals.
//
// Cells are sorted by entity, then month.
func Aggregate(txs []models.Transaction, level Level, side Side) []models.AggregateCell {
	cells := make(map[cellKey]*models.AggregateCell)
	cell := func(entity string, month time.Time) *models.AggregateCell {
		k := keyOf(entity, month)
		c, ok := cells[k]
		if !ok {
			c = &models.AggregateCell{Entity: entity, Month: k.month(), GrossAmount: decimal.Zero}
			cells[k] = c
		}
		return c
	}

	for _, tx := range txs {
		listing, buyer := sides(tx, level)
		switch side {
		case SideListing:
			buyer = ""
		case SideBuyer:
			listing = ""
		}
		month := MonthOf(tx.ClosedAt)

		if listing != "" {
			c := cell(listing, month)
			c.ListingCount++
			c.DealCount++
		}
		if buyer != "" {
			c := cell(buyer, month)
			c.BuyerCount++
			c.DealCount++
		}

		if !tx.Amount.Valid {
			continue
		}
		amount := tx.Amount.Decimal
		switch {
		case listing != "" && listing == buyer:
			c := cell(listing, month)
			c.GrossAmount = c.GrossAmount.Add(amount.Mul(half))
		default:
			if listing != "" {
				c := cell(listing, month)
				c.GrossAmount = c.GrossAmount.Add(amount)
			}
			if buyer != "" {
				c := cell(buyer, month)
				c.GrossAmount = c.GrossAmount.Add(amount)
			}
		}
	}

	out := make([]models.AggregateCell, 0, len(cells))
	for _, c := range cells {
		out = append(out, *c)
	}
	sortCells(out)
	return out
}

func sortCells(cells []models.AggregateCell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Entity != cells[j].Entity {
			return cells[i].Entity < cells[j].Entity
		}
		return cells[i].Month.Before(cells[j].Month)
	})
}

// MonthlyTotals counts distinct transactions per month, regardless of which
// entities took part. It is the denominator of market share.
func MonthlyTotals(txs []models.Transaction) map[time.Time]int64 {
	totals := make(map[time.Time]int64)
	for _, tx := range txs {
		totals[MonthOf(tx.ClosedAt)]++
	}
	return totals
}
