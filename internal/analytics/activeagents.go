package analytics

import (
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// ActiveAgentCell is the number of distinct agents that worked at least one
// side of a deal for a firm in a month.
type ActiveAgentCell struct {
	Entity string    `json:"entity"`
	Month  time.Time `json:"month"`
	Agents int       `json:"agents"`
}

// CountActiveAgents counts distinct agents per (firm, month) across both
// sides, over firms × months. An agent on both sides of one firm's deal is
// counted once. Cells are ordered firm-major like a DenseGrid.
func CountActiveAgents(txs []models.Transaction, firms []string, months []time.Time) []ActiveAgentCell {
	agents := make(map[cellKey]map[string]struct{})
	add := func(firm, agent string, month time.Time) {
		if firm == "" || agent == "" {
			return
		}
		k := keyOf(firm, month)
		set, ok := agents[k]
		if !ok {
			set = make(map[string]struct{})
			agents[k] = set
		}
		set[agent] = struct{}{}
	}
	for _, tx := range txs {
		month := MonthOf(tx.ClosedAt)
		add(tx.ListingEntity, tx.ListingPerson, month)
		add(tx.BuyerEntity, tx.BuyerPerson, month)
	}

	cells := make([]ActiveAgentCell, 0, len(firms)*len(months))
	for _, f := range firms {
		for _, m := range months {
			m = MonthOf(m)
			cells = append(cells, ActiveAgentCell{
				Entity: f,
				Month:  m,
				Agents: len(agents[keyOf(f, m)]),
			})
		}
	}
	return cells
}
