package analytics

import (
	"time"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// Filter narrows the transactions a view is computed over. Empty fields match
// everything; within one field any listed value matches. Values are compared
// after CanonicalName.
type Filter struct {
	AreaCities    []string `json:"area_cities,omitempty"`
	Communities   []string `json:"communities,omitempty"`
	BuildingTypes []string `json:"building_types,omitempty"`
	PropertyTypes []string `json:"property_types,omitempty"`
	// Firms keeps transactions where any listed firm is on either side.
	Firms []string `json:"firms,omitempty"`
}

type nameSet map[string]struct{}

func newNameSet(values []string) nameSet {
	if len(values) == 0 {
		return nil
	}
	s := make(nameSet, len(values))
	for _, v := range values {
		if c := CanonicalName(v); c != "" {
			s[c] = struct{}{}
		}
	}
	return s
}

func (s nameSet) match(values ...string) bool {
	if s == nil {
		return true
	}
	for _, v := range values {
		if _, ok := s[v]; ok {
			return true
		}
	}
	return false
}

// inPeriod keeps transactions with start <= ClosedAt <= end, both dates
// inclusive.
func inPeriod(txs []models.Transaction, start, end time.Time) []models.Transaction {
	start, end = dateOnly(start), dateOnly(end)
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ClosedAt.Before(start) || tx.ClosedAt.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// applyCategories applies every criterion of f except Firms.
func (f Filter) applyCategories(txs []models.Transaction) []models.Transaction {
	areas := newNameSet(f.AreaCities)
	communities := newNameSet(f.Communities)
	buildings := newNameSet(f.BuildingTypes)
	properties := newNameSet(f.PropertyTypes)

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !areas.match(tx.AreaCity) ||
			!communities.match(tx.Community) ||
			!buildings.match(tx.BuildingType) ||
			!properties.match(tx.PropertyClass) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (f Filter) applyFirms(txs []models.Transaction) []models.Transaction {
	firms := newNameSet(f.Firms)
	if firms == nil {
		return txs
	}
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if firms.match(tx.ListingEntity, tx.BuyerEntity) {
			out = append(out, tx)
		}
	}
	return out
}

// Apply returns the transactions matching every criterion of f.
func (f Filter) Apply(txs []models.Transaction) []models.Transaction {
	return f.applyFirms(f.applyCategories(txs))
}
