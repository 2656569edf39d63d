package models

// Record is one raw row as delivered by a data source.
//
// Values keep whatever type the source produced: CSV and text columns arrive as
// string, SQL sources may yield time.Time, float64, int64, []byte or nil. Column
// names are not canonical either ("Sold Date" in exports, "sold_date" in the
// store); the analytics normalizer resolves both.
type Record map[string]any

// Table is an ordered collection of uniformly keyed records.
type Table []Record

// Columns returns the column names of the first record, in no particular order.
// An empty table has no columns.
func (t Table) Columns() []string {
	if len(t) == 0 {
		return nil
	}
	cols := make([]string, 0, len(t[0]))
	for k := range t[0] {
		cols = append(cols, k)
	}
	return cols
}
