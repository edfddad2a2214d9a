package timeseries

import (
	"sort"
	"strconv"
	"time"
)

// AggregateDaily sums the value column per calendar date.
//
// Rows with an unparsable date are dropped and unparsable values count as zero.
// The result has exactly the schema's two columns, one row per date, dates
// formatted as 2006-01-02 and in ascending order.
func AggregateDaily(t *Table, schema Schema) (*Table, error) {
	dateIdx, valueIdx, err := schema.columns(t)
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]float64)
	for _, row := range t.Rows {
		ts, ok := ParseDate(cell(row, dateIdx), schema.DateFormat)
		if !ok {
			continue
		}
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		totals[day] += ParseValue(cell(row, valueIdx))
	}

	days := make([]time.Time, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := &Table{
		Header: []string{schema.DateColumn, schema.ValueColumn},
		Rows:   make([][]string, len(days)),
	}
	for i, day := range days {
		out.Rows[i] = []string{
			day.Format("2006-01-02"),
			strconv.FormatFloat(totals[day], 'f', -1, 64),
		}
	}
	return out, nil
}

// Prepare canonicalizes a table, first summing same-day rows when aggregate is set.
func Prepare(t *Table, schema Schema, aggregate bool) (*Series, error) {
	if aggregate {
		daily, err := AggregateDaily(t, schema)
		if err != nil {
			return nil, err
		}
		t = daily
	}
	return Canonicalize(t, schema)
}
