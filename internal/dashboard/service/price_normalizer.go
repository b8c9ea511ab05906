package service

import (
	"errors"
	"strings"
	"time"

	"golang-stock-sentinel/internal/entity"
)

// Named normalization failures. The caller decides whether they become a
// warning or skip the ticker set; they are never fatal.
var (
	ErrMissingDateColumn  = errors.New("normalized price table has no Date column")
	ErrMissingCloseColumn = errors.New("normalized price table has no close price column")
)

// NormalizePriceTable converts a raw provider-shaped price table into a flat
// chartable one. Two-level column keys collapse to "Field_TICKER", or to the
// bare field name when the ticker level is empty or when exactly one ticker
// was requested. The date index becomes an explicit Date column with duplicate
// trading days removed (keep first), column names are whitespace-trimmed,
// and columns whose flattened name repeats an earlier one are dropped.
//
// Pure function: the same raw table and ticker set always produce the same
// flat table. The input is not mutated.
func NormalizePriceTable(raw *entity.RawPriceTable, tickers []string) (*entity.FlatPriceTable, error) {
	if raw == nil || len(raw.Dates) == 0 {
		return nil, ErrMissingDateColumn
	}

	keepRows := dedupeDateRows(raw.Dates)

	flat := &entity.FlatPriceTable{}
	flat.Dates = make([]time.Time, 0, len(keepRows))
	for _, i := range keepRows {
		flat.Dates = append(flat.Dates, raw.Dates[i])
	}

	seen := make(map[string]bool, len(raw.Columns))
	for _, col := range raw.Columns {
		name := flattenColumnName(col, raw.MultiLevel, len(tickers))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		values := make([]float64, 0, len(keepRows))
		for _, i := range keepRows {
			if i < len(col.Values) {
				values = append(values, col.Values[i])
			}
		}
		flat.Columns = append(flat.Columns, entity.FlatPriceColumn{Name: name, Values: values})
	}

	if _, ok := flat.CloseColumn(); !ok {
		return nil, ErrMissingCloseColumn
	}

	return flat, nil
}

// flattenColumnName collapses a possibly two-level column key into a single
// trimmed name. With a single requested ticker the ticker level is dropped
// entirely since there is no ambiguity.
func flattenColumnName(col entity.RawPriceColumn, multiLevel bool, requestedTickers int) string {
	field := strings.TrimSpace(col.Field)
	if !multiLevel || requestedTickers == 1 {
		return field
	}
	ticker := strings.TrimSpace(col.Ticker)
	if ticker == "" {
		return field
	}
	return field + "_" + ticker
}

// dedupeDateRows returns the row indices to keep so that each calendar date
// appears once, keeping the first occurrence. Providers batching several
// tickers have been observed to repeat rows for shared dates.
func dedupeDateRows(dates []time.Time) []int {
	keep := make([]int, 0, len(dates))
	seen := make(map[time.Time]bool, len(dates))
	for i, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		keep = append(keep, i)
	}
	return keep
}
