package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single sold property after normalization.
//
// Every name field is trimmed and lower-cased; an empty string means the value
// was absent in the source row. ClosedAt is a UTC calendar date (no time of day).
//
// Fields:
//   - ID: listing identifier from the export ("Listing ID #").
//   - ClosedAt: date the sale completed; partitions all monthly aggregation.
//   - Amount: sold price; Valid is false when the raw value was missing or unparsable.
//   - ListingEntity / BuyerEntity: firms (offices) on each side.
//   - ListingPerson / BuyerPerson: agents on each side.
//   - AreaCity, Community, BuildingType, PropertyClass: filter-only categories.
type Transaction struct {
	ID            string
	ClosedAt      time.Time
	Amount        decimal.NullDecimal
	ListingEntity string
	BuyerEntity   string
	ListingPerson string
	BuyerPerson   string
	AreaCity      string
	Community     string
	BuildingType  string
	PropertyClass string
}

// HeadcountRecord is a monthly snapshot of how many agents work at a firm.
//
// Month is the first day of the month (UTC). AgentCount is the mean of every
// snapshot the source holds for that firm and month.
type HeadcountRecord struct {
	Entity     string
	Month      time.Time
	AgentCount float64
}
