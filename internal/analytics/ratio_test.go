package analytics

import (
	"testing"
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

func TestJoinHeadcounts_ZeroPolicy(t *testing.T) {
	grid := Densify([]models.AggregateCell{
		{Entity: "a", Month: jan(1), DealCount: 5},
		{Entity: "b", Month: jan(1), DealCount: 4},
		{Entity: "c", Month: jan(1), DealCount: 6},
	}, []string{"a", "b", "c"}, []time.Time{jan(1)})

	headcounts := []models.HeadcountRecord{
		{Entity: "b", Month: jan(1), AgentCount: 0},
		{Entity: "c", Month: jan(1), AgentCount: 4},
		{Entity: "c", Month: feb(1), AgentCount: 100},
	}
	rows := JoinHeadcounts(grid, headcounts)
	if len(rows) != 3 {
		t.Fatalf("rows: want 3 got %d", len(rows))
	}

	cases := []struct {
		entity  string
		has     bool
		perHead float64
	}{
		{entity: "a", has: false, perHead: 0},
		{entity: "b", has: true, perHead: 0},
		{entity: "c", has: true, perHead: 1.5},
	}
	for i, tc := range cases {
		r := rows[i]
		if r.Entity != tc.entity || r.HasHeadcount != tc.has || r.DealsPerAgent != tc.perHead {
			t.Fatalf("row %d: want %+v got %+v", i, tc, r)
		}
	}
}
