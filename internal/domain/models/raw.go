package models

// RawTransaction is one row of a listings export, kept as text.
//
// Empty strings are stored as NULL.
type RawTransaction struct {
	ListingID     string
	SoldDate      string
	SoldPrice     string
	ListingFirm   string
	BuyerFirm     string
	ListingAgent  string
	BuyerAgent    string
	AreaCity      string
	Community     string
	BuildingType  string
	PropertyClass string
}

// RawHeadcount is one row of a brokerage headcount export, kept as text.
type RawHeadcount struct {
	Broker string
	Date   string
	Value  string
}

// TableKind names the two raw tables.
type TableKind string

const (
	KindTransactions TableKind = "transactions"
	KindHeadcounts   TableKind = "headcounts"
)
