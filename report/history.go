package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/stats"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

// MovingAverageWindow is the window of the history's trailing moving average.
const MovingAverageWindow = 7

// HistorySummary describes the canonical series a forecast was fitted on.
type HistorySummary struct {
	Points   int
	First    time.Time
	Last     time.Time
	SpanDays int // Whole days from First to Last
	Total    float64
	Mean     float64
	Std      float64 // Sample standard deviation, 0 below two points
	Min      float64
	Max      float64

	// Trailing moving average of the last MovingAverageWindow points, aligned to
	// their timestamps. Empty when the history is shorter than the window.
	MovingAverage *timeseries.Series

	// Average deviation from trend per weekday and the strength of that
	// pattern. Nil unless the history has two weeks of consecutive days.
	Weekly         map[time.Weekday]float64
	WeeklyStrength float64
}

// Summarize computes the summary of a series.
func Summarize(series *timeseries.Series) *HistorySummary {
	s := &HistorySummary{
		Points:   series.Len(),
		First:    series.First(),
		Last:     series.Last(),
		SpanDays: series.SpanDays(),
		Total:    series.Sum(),
		Mean:     series.Mean(),
		Std:      series.Std(),
		Min:      series.Min(),
		Max:      series.Max(),
	}

	ma := series.MovingAverage(MovingAverageWindow)
	s.MovingAverage = ma.Slice(ma.Len()-MovingAverageWindow, ma.Len())

	if consecutiveDays(series) {
		if d := stats.Decompose(series.Values, 7); d != nil {
			s.Weekly = make(map[time.Weekday]float64, 7)
			for i, v := range d.Pattern {
				s.Weekly[series.Timestamps[i].Weekday()] = v
			}
			s.WeeklyStrength = d.Strength()
		}
	}
	return s
}

func consecutiveDays(series *timeseries.Series) bool {
	for i := 1; i < series.Len(); i++ {
		if timeseries.DaysBetween(series.Timestamps[i-1], series.Timestamps[i]) != 1 {
			return false
		}
	}
	return series.Len() > 0
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WriteHistory writes a human-readable history summary.
func WriteHistory(w io.Writer, s *HistorySummary) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Sales history")); err != nil {
		return err
	}
	if s.Points == 0 {
		_, err := fmt.Fprintln(w, "  no observations")
		return err
	}

	overview := keyValueTable().
		Row("observations", strconv.Itoa(s.Points)).
		Row("range", fmt.Sprintf("%s .. %s", s.First.Format("2006-01-02"), s.Last.Format("2006-01-02"))).
		Row("span", fmt.Sprintf("%d days", s.SpanDays)).
		Row("total", round(s.Total)).
		Row("mean", round(s.Mean)).
		Row("std", round(s.Std)).
		Row("min", round(s.Min)).
		Row("max", round(s.Max))
	if err := writeTable(w, overview); err != nil {
		return err
	}

	if s.Weekly != nil {
		title := fmt.Sprintf("Weekly pattern (strength %s)", round(s.WeeklyStrength))
		if _, err := fmt.Fprintf(w, "\n%s\n", titleStyle.Render(title)); err != nil {
			return err
		}
		t := numericTable("day", "effect")
		for _, day := range weekdays {
			t.Row(day.String()[:3], round(s.Weekly[day]))
		}
		if err := writeTable(w, t); err != nil {
			return err
		}
	}

	if s.MovingAverage == nil || s.MovingAverage.Len() == 0 {
		return nil
	}
	title := fmt.Sprintf("%d-day moving average", MovingAverageWindow)
	if _, err := fmt.Fprintf(w, "\n%s\n", titleStyle.Render(title)); err != nil {
		return err
	}
	t := numericTable("ds", "units")
	for i, v := range s.MovingAverage.Values {
		t.Row(s.MovingAverage.Timestamps[i].Format("2006-01-02"), round(v))
	}
	return writeTable(w, t)
}

// WritePreview writes the first n rows of a raw table.
func WritePreview(w io.Writer, t *timeseries.Table, n int) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Data preview")); err != nil {
		return err
	}
	rows := t.Rows
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	return writeTable(w, textTable(t.Header...).Rows(rows...))
}
