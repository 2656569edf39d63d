package analytics

import (
	"strings"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// DetectKind classifies a raw export by its header row. A sold date column
// marks a transactions export; a broker and an agent count column mark a
// headcounts export.
func DetectKind(header []string) (models.TableKind, bool) {
	folded := make(map[string]any, len(header))
	for _, h := range header {
		folded[foldColumn(h)] = struct{}{}
	}
	has := func(aliases []string) bool {
		for _, a := range aliases {
			if _, ok := folded[a]; ok {
				return true
			}
		}
		return false
	}
	switch {
	case has(colClosedAt):
		return models.KindTransactions, true
	case has(colHeadcountEntity) && has(colHeadcountCount):
		return models.KindHeadcounts, true
	default:
		return "", false
	}
}

// ToRawTransaction picks the known transaction columns out of rec, trimmed
// but otherwise unparsed.
func ToRawTransaction(rec models.Record) models.RawTransaction {
	cols := foldRecord(rec)
	text := func(aliases []string) string {
		return strings.TrimSpace(toText(lookup(cols, aliases)))
	}
	return models.RawTransaction{
		ListingID:     text(colID),
		SoldDate:      text(colClosedAt),
		SoldPrice:     text(colAmount),
		ListingFirm:   text(colListingEntity),
		BuyerFirm:     text(colBuyerEntity),
		ListingAgent:  text(colListingPerson),
		BuyerAgent:    text(colBuyerPerson),
		AreaCity:      text(colAreaCity),
		Community:     text(colCommunity),
		BuildingType:  text(colBuildingType),
		PropertyClass: text(colPropertyClass),
	}
}

// ToRawHeadcount picks the known headcount columns out of rec.
func ToRawHeadcount(rec models.Record) models.RawHeadcount {
	cols := foldRecord(rec)
	return models.RawHeadcount{
		Broker: strings.TrimSpace(toText(lookup(cols, colHeadcountEntity))),
		Date:   strings.TrimSpace(toText(lookup(cols, colHeadcountDate))),
		Value:  strings.TrimSpace(toText(lookup(cols, colHeadcountCount))),
	}
}
