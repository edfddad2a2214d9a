package timeseries

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, csvData string) *Table {
	t.Helper()
	table, err := ReadTable(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	return table
}

func TestCanonicalizeMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		missing []string
	}{
		{"no date", "Day,Units_Sold\n2024-01-01,1\n", []string{"Date"}},
		{"no units", "Date,Units\n2024-01-01,1\n", []string{"Units_Sold"}},
		{"neither", "a,b\n1,2\n", []string{"Date", "Units_Sold"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canonicalize(mustTable(t, tt.csv), DefaultSchema())

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tt.missing, schemaErr.Missing)
			assert.Contains(t, err.Error(), tt.missing[0])
		})
	}
}

func TestCanonicalizeTrimsHeaders(t *testing.T) {
	table := &Table{
		Header: []string{"  Date ", "Units_Sold  ", "Item"},
		Rows:   [][]string{{"2024-01-02", "3", "Milk"}},
	}

	series, err := Canonicalize(table, DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, series.Values)
}

func TestCanonicalizeDropsBadDatesAndSorts(t *testing.T) {
	table := mustTable(t, `Date,Units_Sold,Profit
2024-01-03,30,1
not-a-date,99,1
2024-01-01,10,1
,77,1
2024-01-02,20,1`)

	series, err := Canonicalize(table, DefaultSchema())
	require.NoError(t, err)

	require.Equal(t, 3, series.Len())
	assert.True(t, series.IsSorted())
	assert.Equal(t, []float64{10, 20, 30}, series.Values)
	assert.Equal(t, "y", series.Name)
	assert.Equal(t, 2, series.SpanDays())
	for _, ts := range series.Timestamps {
		assert.False(t, ts.IsZero())
	}
}

func TestCanonicalizeCoercesValues(t *testing.T) {
	table := mustTable(t, `Date,Units_Sold
2024-01-01,abc
2024-01-02,
2024-01-03,NaN
2024-01-04,+Inf
2024-01-05,7.5`)

	series, err := Canonicalize(table, DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 7.5}, series.Values)
}

func TestCanonicalizeShortRows(t *testing.T) {
	table := mustTable(t, "Units_Sold,Date\n5\n6,2024-01-01\n")

	series, err := Canonicalize(table, DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
	assert.Equal(t, 6.0, series.Values[0])
}

func TestCanonicalizeKeepsDuplicateDates(t *testing.T) {
	table := mustTable(t, `Date,Units_Sold
2024-01-02,1
2024-01-01,2
2024-01-02,3`)

	series, err := Canonicalize(table, DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 3}, series.Values)
}

func TestCanonicalizeDoesNotMutateInput(t *testing.T) {
	table := mustTable(t, "Date,Units_Sold\n2024-01-02,1\n2024-01-01,2\n")
	before := append([][]string(nil), table.Rows...)

	_, err := Canonicalize(table, DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, before, table.Rows)
}

func TestCanonicalizeCustomSchema(t *testing.T) {
	table := mustTable(t, "day,qty\n03.01.2024,4\n02.01.2024,5\n")
	schema := Schema{DateColumn: "day", ValueColumn: "qty", DateFormat: "02.01.2006"}

	series, err := Canonicalize(table, schema)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 4}, series.Values)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.First())
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-03-09", "2024/03/09", "03/09/2024", "3/9/2024", "09-Mar-2024", "Mar 9, 2024"} {
		ts, ok := ParseDate(s, "")
		assert.True(t, ok, s)
		assert.Equal(t, want, ts, s)
	}

	_, ok := ParseDate("yesterday", "")
	assert.False(t, ok)
}
