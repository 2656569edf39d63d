package analytics

import (
	"sort"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// sides returns the listing-side and buyer-side identities of tx at the given
// level. Either may be empty.
func sides(tx models.Transaction, level Level) (listing, buyer string) {
	if level == LevelAgent {
		return tx.ListingPerson, tx.BuyerPerson
	}
	return tx.ListingEntity, tx.BuyerEntity
}

// ResolveEntities returns the sorted union of every non-empty listing-side and
// buyer-side identity at the given level.
//
// Names are expected to be normalized already; two spellings are the same
// entity only if their canonical forms are identical.
func ResolveEntities(txs []models.Transaction, level Level) []string {
	seen := make(map[string]struct{})
	for _, tx := range txs {
		l, b := sides(tx, level)
		if l != "" {
			seen[l] = struct{}{}
		}
		if b != "" {
			seen[b] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// AgentFirms maps every agent to the first firm it was seen with: the earliest
// transaction wins, and within a transaction the listing side is read before
// the buyer side. Agents only ever seen without a firm are left out.
func AgentFirms(txs []models.Transaction) map[string]string {
	ordered := make([]models.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ClosedAt.Before(ordered[j].ClosedAt)
	})

	firms := make(map[string]string)
	assign := func(agent, firm string) {
		if agent == "" || firm == "" {
			return
		}
		if _, ok := firms[agent]; !ok {
			firms[agent] = firm
		}
	}
	for _, tx := range ordered {
		assign(tx.ListingPerson, tx.ListingEntity)
		assign(tx.BuyerPerson, tx.BuyerEntity)
	}
	return firms
}
