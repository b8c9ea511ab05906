package entity

import (
	"strings"
	"time"
)

// RawPriceColumn is one column of a provider-shaped price table. Ticker is
// empty when the provider returned a single-level column axis, or when the
// second-level key for this column was absent.
type RawPriceColumn struct {
	Field  string
	Ticker string
	Values []float64
}

// RawPriceTable is daily price history as returned by a market-data provider:
// one row per trading date in ascending order, columns keyed either by field
// name alone or by (field, ticker). No particular set of fields is guaranteed.
type RawPriceTable struct {
	Dates   []time.Time
	Columns []RawPriceColumn

	// MultiLevel marks that the provider returned a two-level column axis,
	// even if some second-level keys are empty.
	MultiLevel bool
}

// FlatPriceColumn is a flattened, uniquely named price column aligned with the
// owning table's Date column.
type FlatPriceColumn struct {
	Name   string
	Values []float64
}

// FlatPriceTable is the chartable form of a price table: an explicit Date
// column (ascending, duplicates removed) plus single-level price columns.
type FlatPriceTable struct {
	Dates   []time.Time
	Columns []FlatPriceColumn
}

// ColumnNames returns the flattened column names including the leading Date
// column.
func (t FlatPriceTable) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns)+1)
	names = append(names, "Date")
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column returns the column with the given name, if present.
func (t FlatPriceTable) Column(name string) (FlatPriceColumn, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return FlatPriceColumn{}, false
}

// CloseColumn returns the first close-price column, either bare "Close" or a
// ticker-qualified "Close_TICKER".
func (t FlatPriceTable) CloseColumn() (FlatPriceColumn, bool) {
	for _, c := range t.Columns {
		if c.Name == "Close" || strings.HasPrefix(c.Name, "Close_") {
			return c, true
		}
	}
	return FlatPriceColumn{}, false
}

// Rows returns the number of trading days in the table.
func (t FlatPriceTable) Rows() int {
	return len(t.Dates)
}
