package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

func TestMonthRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{name: "same month", start: jan(5), end: jan(20), want: 1},
		{name: "two months", start: jan(31), end: feb(1), want: 2},
		{name: "year wrap", start: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC), end: feb(1), want: 4},
		{name: "reversed", start: feb(1), end: jan(1), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MonthRange(tc.start, tc.end)
			if len(got) != tc.want {
				t.Fatalf("months: want %d got %d", tc.want, len(got))
			}
			for _, m := range got {
				if m.Day() != 1 {
					t.Fatalf("month %v is not a first-of-month", m)
				}
			}
		})
	}
}

func TestDensify_GridCompleteness(t *testing.T) {
	months := MonthRange(jan(1), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	sparse := []models.AggregateCell{
		{Entity: "a", Month: feb(1), DealCount: 3, GrossAmount: decimal.NewFromInt(10)},
		{Entity: "z", Month: feb(1), DealCount: 9, GrossAmount: decimal.NewFromInt(10)},
	}

	for m := 0; m <= 4; m++ {
		for _, cells := range [][]models.AggregateCell{nil, sparse} {
			entities := make([]string, m)
			for i := range entities {
				entities[i] = fmt.Sprintf("e%d", i)
			}
			if m > 0 {
				entities[0] = "a"
			}
			grid := Densify(cells, entities, months)
			if len(grid.Cells) != m*len(months) {
				t.Fatalf("m=%d: want %d cells got %d", m, m*len(months), len(grid.Cells))
			}
		}
	}
}

func TestDensify_FillsZerosAndKeepsValues(t *testing.T) {
	cells := []models.AggregateCell{
		{Entity: "a", Month: feb(1), DealCount: 3, GrossAmount: decimal.NewFromInt(10)},
		{Entity: "other", Month: jan(1), DealCount: 7},
	}
	grid := Densify(cells, []string{"a", "b"}, []time.Time{jan(1), feb(1)})
	if len(grid.Cells) != 4 {
		t.Fatalf("cells: want 4 got %d", len(grid.Cells))
	}
	if got := grid.At(0, 1); got.DealCount != 3 || !got.GrossAmount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("a/feb: got %+v", got)
	}
	for _, ij := range [][2]int{{0, 0}, {1, 0}, {1, 1}} {
		c := grid.At(ij[0], ij[1])
		if c.DealCount != 0 || !c.GrossAmount.IsZero() {
			t.Fatalf("cell %v should be zero, got %+v", ij, c)
		}
		if c.Entity != grid.Entities[ij[0]] || !c.Month.Equal(grid.Months[ij[1]]) {
			t.Fatalf("cell %v mislabelled: %+v", ij, c)
		}
	}
}
