package analytics

import "sort"

// Ranked is one entry of a leaderboard.
//
// Rank is 1-based. A pinned entity appended after the top K keeps its real
// rank when it has a value, and gets rank 0 when it had none.
type Ranked struct {
	Entity string  `json:"entity"`
	Value  float64 `json:"value"`
	Rank   int     `json:"rank"`
	Pinned bool    `json:"pinned"`
}

// Rank orders entities by value descending, ties broken by name ascending,
// and keeps the first k. When pinned is set and not already among them it is
// appended, so the result holds at most k+1 entries.
//
// pinned goes through CanonicalName before matching. A negative k is treated
// as zero.
func Rank(values map[string]float64, k int, pinned string) []Ranked {
	all := make([]Ranked, 0, len(values))
	for e, v := range values {
		all = append(all, Ranked{Entity: e, Value: v})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Value != all[j].Value {
			return all[i].Value > all[j].Value
		}
		return all[i].Entity < all[j].Entity
	})
	for i := range all {
		all[i].Rank = i + 1
	}

	if k < 0 {
		k = 0
	}
	if k > len(all) {
		k = len(all)
	}
	out := make([]Ranked, 0, k+1)
	out = append(out, all[:k]...)

	pinned = CanonicalName(pinned)
	if pinned == "" {
		return out
	}
	for i := range out {
		if out[i].Entity == pinned {
			out[i].Pinned = true
			return out
		}
	}
	for _, r := range all[k:] {
		if r.Entity == pinned {
			r.Pinned = true
			return append(out, r)
		}
	}
	return append(out, Ranked{Entity: pinned, Pinned: true})
}

// Entities returns the entity names of ranked, in order.
func Entities(ranked []Ranked) []string {
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Entity
	}
	return names
}
