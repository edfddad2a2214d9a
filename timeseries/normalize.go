package timeseries

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Schema names the two columns the normalizer needs.
type Schema struct {
	DateColumn  string // Date-like column (default: "Date")
	ValueColumn string // Units sold column (default: "Units_Sold")
	DateFormat  string // Layout tried before the built-in ones (optional)
}

// DefaultSchema returns the schema of the grocery sales export.
func DefaultSchema() Schema {
	return Schema{
		DateColumn:  "Date",
		ValueColumn: "Units_Sold",
	}
}

// SchemaError reports required columns missing from a raw table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input must have %s column(s)", strings.Join(quoteAll(e.Missing), " and "))
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strconv.Quote(n)
	}
	return out
}

// dateLayouts are tried in order after Schema.DateFormat.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006-01",
	"2006",
}

// ParseDate parses s with the first matching layout. ok is false when no layout matches.
func ParseDate(s, preferred string) (ts time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts.UTC(), true
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseValue converts s to a finite number. Unparsable, empty and non-finite
// entries become 0.
func ParseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// columns resolves the schema against the table header.
func (s Schema) columns(t *Table) (dateIdx, valueIdx int, err error) {
	dateIdx = t.ColumnIndex(s.DateColumn)
	valueIdx = t.ColumnIndex(s.ValueColumn)

	var missing []string
	if dateIdx < 0 {
		missing = append(missing, s.DateColumn)
	}
	if valueIdx < 0 {
		missing = append(missing, s.ValueColumn)
	}
	if len(missing) > 0 {
		return -1, -1, &SchemaError{Missing: missing}
	}
	return dateIdx, valueIdx, nil
}

// Canonicalize reshapes a raw table into a canonical (ds, y) series.
//
// Rows whose date cannot be parsed are dropped, values that are not numbers
// become 0, and the result is sorted by timestamp. Rows sharing a date are kept
// as-is; use AggregateDaily first to sum them.
func Canonicalize(t *Table, schema Schema) (*Series, error) {
	dateIdx, valueIdx, err := schema.columns(t)
	if err != nil {
		return nil, err
	}

	type point struct {
		ts time.Time
		y  float64
	}
	points := make([]point, 0, len(t.Rows))
	for _, row := range t.Rows {
		ts, ok := ParseDate(cell(row, dateIdx), schema.DateFormat)
		if !ok {
			continue
		}
		points = append(points, point{ts: ts, y: ParseValue(cell(row, valueIdx))})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].ts.Before(points[j].ts)
	})

	timestamps := make([]time.Time, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		timestamps[i] = p.ts
		values[i] = p.y
	}
	series, err := NewWithTimestamps(timestamps, values)
	if err != nil {
		return nil, err
	}
	series.Name = "y"
	return series, nil
}
