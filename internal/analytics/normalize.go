package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// NormalizeReport summarizes what normalization kept and what it had to drop
// or blank out. It is returned with every result so callers can surface data
// quality without failing the request.
type NormalizeReport struct {
	TransactionsIn     int `json:"transactions_in"`
	TransactionsKept   int `json:"transactions_kept"`
	DroppedInvalidDate int `json:"dropped_invalid_date"`
	AmountsMissing     int `json:"amounts_missing"`
	AmountsInvalid     int `json:"amounts_invalid"`
	HeadcountsIn       int `json:"headcounts_in"`
	HeadcountsKept     int `json:"headcounts_kept"`
	HeadcountsDropped  int `json:"headcounts_dropped"`
}

// Column aliases, keyed by the canonical field, listed as folded column names
// (lower case, letters and digits only). See foldColumn.
var (
	colID            = []string{"listingid", "id", "transactionid", "mlsnumber"}
	colClosedAt      = []string{"solddate", "closedat", "closedate", "closingdate"}
	colAmount        = []string{"soldprice", "amount", "saleprice"}
	colListingEntity = []string{"listingfirm1officename", "listingfirm", "listingoffice", "listingentity"}
	colBuyerEntity   = []string{"buyerfirm1officename", "buyerfirm", "buyeroffice", "buyerentity"}
	colListingPerson = []string{"listingagent1agentname", "listingagent", "listingperson"}
	colBuyerPerson   = []string{"buyeragent1agentname", "buyeragent", "buyerperson"}
	colAreaCity      = []string{"areacity", "city", "area"}
	colCommunity     = []string{"community"}
	colBuildingType  = []string{"buildingtype"}
	colPropertyClass = []string{"propertyclass", "propertytype"}

	colHeadcountEntity = []string{"broker", "brokeragename", "brokerage", "firm", "entity"}
	colHeadcountDate   = []string{"date", "month", "snapshotdate"}
	colHeadcountCount  = []string{"value", "agentcount", "agents"}
)

// dateLayouts are tried in order; the first that parses wins.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// placeholders the exports and upload scripts wrote for missing dates and
// amounts. Names are never matched against them.
var placeholders = map[string]struct{}{
	"":     {},
	"n/a":  {},
	"na":   {},
	"nan":  {},
	"nat":  {},
	"none": {},
	"null": {},
}

var currencyCodes = []string{"cad", "usd", "eur", "gbp"}

// NormalizeTransactions converts raw transaction rows into typed Transactions.
//
// Behavior:
//   - Rows whose sold date cannot be parsed are dropped and counted.
//   - Amounts that are missing or unparsable become invalid NullDecimals; the
//     row is kept and the problem counted.
//   - Names and categories are trimmed and lower-cased.
//
// The output preserves input order.
func NormalizeTransactions(raw models.Table) ([]models.Transaction, NormalizeReport) {
	var rep NormalizeReport
	rep.TransactionsIn = len(raw)
	out := make([]models.Transaction, 0, len(raw))

	for _, rec := range raw {
		cols := foldRecord(rec)

		closed, ok := parseDate(lookup(cols, colClosedAt))
		if !ok {
			rep.DroppedInvalidDate++
			continue
		}

		amount, present, valid := parseDecimal(lookup(cols, colAmount))
		switch {
		case !present:
			rep.AmountsMissing++
		case !valid || amount.IsNegative():
			rep.AmountsInvalid++
			valid = false
		}

		tx := models.Transaction{
			ID:            strings.TrimSpace(toText(lookup(cols, colID))),
			ClosedAt:      closed,
			ListingEntity: CanonicalName(toText(lookup(cols, colListingEntity))),
			BuyerEntity:   CanonicalName(toText(lookup(cols, colBuyerEntity))),
			ListingPerson: CanonicalName(toText(lookup(cols, colListingPerson))),
			BuyerPerson:   CanonicalName(toText(lookup(cols, colBuyerPerson))),
			AreaCity:      CanonicalName(toText(lookup(cols, colAreaCity))),
			Community:     CanonicalName(toText(lookup(cols, colCommunity))),
			BuildingType:  CanonicalName(toText(lookup(cols, colBuildingType))),
			PropertyClass: CanonicalName(toText(lookup(cols, colPropertyClass))),
		}
		if present && valid {
			tx.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
		}
		out = append(out, tx)
	}

	rep.TransactionsKept = len(out)
	return out, rep
}

// NormalizeHeadcounts converts raw headcount rows into one HeadcountRecord per
// (entity, month), averaging multiple snapshots of the same month.
//
// Rows without an entity, with an unparsable date, or with a missing,
// unparsable or negative count are dropped and counted. The result is sorted
// by entity, then month.
func NormalizeHeadcounts(raw models.Table, rep *NormalizeReport) []models.HeadcountRecord {
	type acc struct {
		sum decimal.Decimal
		n   int64
	}
	rep.HeadcountsIn = len(raw)
	groups := make(map[cellKey]*acc)

	for _, rec := range raw {
		cols := foldRecord(rec)
		entity := CanonicalName(toText(lookup(cols, colHeadcountEntity)))
		if entity == "" {
			rep.HeadcountsDropped++
			continue
		}
		day, ok := parseDate(lookup(cols, colHeadcountDate))
		if !ok {
			rep.HeadcountsDropped++
			continue
		}
		count, present, valid := parseDecimal(lookup(cols, colHeadcountCount))
		if !present || !valid || count.IsNegative() {
			rep.HeadcountsDropped++
			continue
		}
		k := keyOf(entity, MonthOf(day))
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.sum = a.sum.Add(count)
		a.n++
	}

	out := make([]models.HeadcountRecord, 0, len(groups))
	for k, a := range groups {
		mean := a.sum.Div(decimal.NewFromInt(a.n))
		out = append(out, models.HeadcountRecord{
			Entity:     k.entity,
			Month:      k.month(),
			AgentCount: mean.InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Entity != out[j].Entity {
			return out[i].Entity < out[j].Entity
		}
		return out[i].Month.Before(out[j].Month)
	})

	rep.HeadcountsKept = len(out)
	return out
}

// CanonicalName trims surrounding whitespace and lower-cases s. Inner
// whitespace is kept, so "Acme  Realty" and "Acme Realty" stay distinct, and
// values such as "None" are real names. Only a blank value is absent.
func CanonicalName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// foldColumn reduces a column name to lower-case letters and digits, so that
// "Listing Firm 1 - Office Name" and "listing_firm_1_office_name" compare equal.
func foldColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func foldRecord(rec models.Record) map[string]any {
	cols := make(map[string]any, len(rec))
	for k, v := range rec {
		cols[foldColumn(k)] = v
	}
	return cols
}

// lookup returns the value of the first alias present in cols.
func lookup(cols map[string]any, aliases []string) any {
	for _, a := range aliases {
		if v, ok := cols[a]; ok {
			return v
		}
	}
	return nil
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return decimal.NewFromFloat(t).String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// parseDate returns the calendar date held by v, in UTC at midnight.
func parseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(t), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(*t), true
	}

	s := strings.TrimSpace(toText(v))
	if _, ok := placeholders[strings.ToLower(s)]; ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return dateOnly(d), true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDecimal parses money and counts. present is false when v holds no value
// at all; valid is false when a value was there but could not be parsed.
func parseDecimal(v any) (d decimal.Decimal, present, valid bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, false, false
	case decimal.Decimal:
		return t, true, true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, false, false
		}
		return decimal.NewFromFloat(t), true, true
	case float32:
		return parseDecimal(float64(t))
	case int:
		return decimal.NewFromInt(int64(t)), true, true
	case int64:
		return decimal.NewFromInt(t), true, true
	case int32:
		return decimal.NewFromInt(int64(t)), true, true
	}

	s := strings.TrimSpace(toText(v))
	if _, ok := placeholders[strings.ToLower(s)]; ok {
		return decimal.Zero, false, false
	}
	cleaned := stripMoney(s)
	if cleaned == "" {
		return decimal.Zero, true, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, true, false
	}
	return d, true, true
}

// stripMoney removes currency symbols and codes, thousands separators and
// whitespace from s.
func stripMoney(s string) string {
	lower := strings.ToLower(s)
	for _, code := range currencyCodes {
		lower = strings.TrimPrefix(lower, code)
		lower = strings.TrimSuffix(lower, code)
	}
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) || r == ',' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
