package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func fallbackResult(t *testing.T) *forecast.Result {
	t.Helper()
	series := timeseries.NewDaily(jan1, []float64{10, 12, 9, 14, 11, 13, 10, 15, 12, 14})
	config := forecast.DefaultConfig()
	config.DisableSeasonal = true

	result, err := forecast.NewEngine(config).Forecast(series, 5)
	require.NoError(t, err)
	return result
}

func seasonalResult(t *testing.T) *forecast.Result {
	t.Helper()
	pattern := []float64{0, -5, -3, 2, 8, 15, 10}
	values := make([]float64, 42)
	for i := range values {
		values[i] = 100 + float64(i) + pattern[i%7]
	}

	result, err := forecast.NewEngine(nil).Forecast(timeseries.NewDaily(jan1, values), 7)
	require.NoError(t, err)
	require.Equal(t, forecast.StrategySeasonal, result.Strategy)
	return result
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", " yaml ", "csv"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	assert.Equal(t, "13.87", round(13.866667))
	assert.Equal(t, "5.00", round(5))
	assert.Equal(t, "-0.50", round(-0.5))
	assert.Equal(t, "NaN", round(nanValue()))
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	wr := &Writer{Format: FormatTable, Tail: 3}
	require.NoError(t, wr.Write(&buf, fallbackResult(t), 5, 10))

	out := buf.String()
	assert.Contains(t, out, "Forecast (LinearRegression (fallback))")
	assert.Contains(t, out, "last 3 of 5 rows")
	assert.Contains(t, out, "yhat_lower")
	assert.NotContains(t, out, "2024-01-12")
	assert.Contains(t, out, "2024-01-13")
	assert.Contains(t, out, "2024-01-15")
}

func TestWriteTableHelper(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, keyValueTable()))
	assert.Empty(t, buf.String())

	require.NoError(t, writeTable(&buf, numericTable("ds", "units").Row("2024-01-01", "3.00")))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "╭"))
	assert.True(t, strings.HasSuffix(out, "╯\n"))
	assert.Contains(t, out, "units")
	assert.Contains(t, out, "3.00")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	wr := &Writer{Format: FormatJSON}
	require.NoError(t, wr.Write(&buf, fallbackResult(t), 5, 10))

	var doc struct {
		Model         string `json:"model"`
		Horizon       int    `json:"horizon"`
		HistoryPoints int    `json:"history_points"`
		Rows          []struct {
			Ds    time.Time `json:"ds"`
			Yhat  float64   `json:"yhat"`
			Lower float64   `json:"yhat_lower"`
			Upper float64   `json:"yhat_upper"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "LinearRegression (fallback)", doc.Model)
	assert.Equal(t, 5, doc.Horizon)
	assert.Equal(t, 10, doc.HistoryPoints)
	require.Len(t, doc.Rows, 5)
	assert.True(t, doc.Rows[0].Ds.Equal(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)))
	assert.LessOrEqual(t, doc.Rows[0].Lower, doc.Rows[0].Yhat)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	wr := &Writer{Format: FormatYAML}
	require.NoError(t, wr.Write(&buf, fallbackResult(t), 5, 10))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "LinearRegression (fallback)", doc["model"])
	assert.Equal(t, 5, doc["horizon"])
	assert.Len(t, doc["rows"], 5)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	wr := &Writer{Format: FormatCSV, Tail: 1}
	require.NoError(t, wr.Write(&buf, fallbackResult(t), 5, 10))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"ds", "yhat", "yhat_lower", "yhat_upper"}, records[0])
	assert.Equal(t, "2024-01-11", records[1][0])
	assert.Equal(t, "13.87", records[1][1])
}

func TestWriteUnknownFormat(t *testing.T) {
	wr := &Writer{Format: "xml"}
	assert.Error(t, wr.Write(&bytes.Buffer{}, fallbackResult(t), 5, 10))
}

func TestWriteComponents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteComponents(&buf, seasonalResult(t), 7))

	out := buf.String()
	assert.Contains(t, out, "Components")
	assert.Contains(t, out, "trend")
	assert.Contains(t, out, "weekly")
	assert.Contains(t, out, "╭")
	assert.Equal(t, 7, strings.Count(out, "2024-"))
}

func TestWriteComponentsFallback(t *testing.T) {
	err := WriteComponents(&bytes.Buffer{}, fallbackResult(t), 7)
	assert.True(t, errors.Is(err, ErrNoComponents))
}

func TestSummarize(t *testing.T) {
	series := timeseries.NewDaily(jan1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	s := Summarize(series)

	assert.Equal(t, 10, s.Points)
	assert.Equal(t, jan1, s.First)
	assert.Equal(t, jan1.AddDate(0, 0, 9), s.Last)
	assert.Equal(t, 55.0, s.Total)
	assert.Equal(t, 5.5, s.Mean)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 10.0, s.Max)
	assert.Equal(t, 9, s.SpanDays)
	assert.InDelta(t, 3.0277, s.Std, 1e-4)

	// windows ending on days 7..10
	require.Equal(t, 4, s.MovingAverage.Len())
	assert.InDelta(t, 4.0, s.MovingAverage.Values[0], 1e-9)
	assert.InDelta(t, 7.0, s.MovingAverage.Values[3], 1e-9)
	assert.Equal(t, jan1.AddDate(0, 0, 9), s.MovingAverage.Timestamps[3])

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, s))
	assert.Contains(t, buf.String(), "2024-01-01 .. 2024-01-10")
	assert.Contains(t, buf.String(), "7-day moving average")
	assert.Contains(t, buf.String(), "9 days")
	assert.Contains(t, buf.String(), "3.03")
}

func TestSummarizeShortHistory(t *testing.T) {
	s := Summarize(timeseries.NewDaily(jan1, []float64{3, 4}))
	assert.Equal(t, 0, s.MovingAverage.Len())

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, s))
	assert.NotContains(t, buf.String(), "moving average")

	buf.Reset()
	require.NoError(t, WriteHistory(&buf, Summarize(timeseries.NewDaily(jan1, nil))))
	assert.Contains(t, buf.String(), "no observations")
}

func TestWarning(t *testing.T) {
	assert.Contains(t, Warning("no components"), "no components")
}

func TestWritePreview(t *testing.T) {
	table, err := timeseries.ReadTable(strings.NewReader("Date,Item,Units_Sold\n2024-01-01,Milk,3\n2024-01-02,Eggs,4\n2024-01-03,Tea,5\n"), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePreview(&buf, table, 2))

	out := buf.String()
	assert.Contains(t, out, "Units_Sold")
	assert.Contains(t, out, "Eggs")
	assert.NotContains(t, out, "Tea")
}

func TestSummarizeWeekly(t *testing.T) {
	pattern := []float64{3, -2, -1, 0, 1, 2, -3} // jan1 is a Monday
	values := make([]float64, 28)
	for i := range values {
		values[i] = 100 + pattern[i%7]
	}

	s := Summarize(timeseries.NewDaily(jan1, values))
	require.NotNil(t, s.Weekly)
	assert.InDelta(t, 3.0, s.Weekly[time.Monday], 1e-9)
	assert.InDelta(t, -3.0, s.Weekly[time.Sunday], 1e-9)
	assert.InDelta(t, 1.0, s.WeeklyStrength, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, s))
	assert.Contains(t, buf.String(), "Weekly pattern (strength 1.00)")
	assert.Contains(t, buf.String(), "Mon")

	gappy := timeseries.NewDaily(jan1, values)
	gappy.Timestamps[5] = gappy.Timestamps[5].AddDate(0, 0, 1)
	assert.Nil(t, Summarize(gappy).Weekly)
}

func TestWriteDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiagnostics(&buf, fallbackResult(t)))
	out := buf.String()
	assert.Contains(t, out, "LinearRegression (fallback)")
	assert.Contains(t, out, "0.34 units/day")
	assert.Contains(t, out, "±5.00")
	assert.Contains(t, out, "durbin-watson")
	assert.Contains(t, out, "last fitted")

	buf.Reset()
	require.NoError(t, WriteDiagnostics(&buf, seasonalResult(t)))
	out = buf.String()
	assert.Contains(t, out, "weekly(3)")
	assert.Contains(t, out, "changepoints")
	assert.Contains(t, out, "p=")
}
