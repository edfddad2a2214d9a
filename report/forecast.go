package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
)

// Writer renders forecasts in one format.
type Writer struct {
	Format Format
	Tail   int // Rows shown by the table format; 0 shows all
}

// Write renders the forecast of horizon days fitted on historyPoints observations.
func (wr *Writer) Write(w io.Writer, result *forecast.Result, horizon, historyPoints int) error {
	switch wr.Format {
	case FormatTable, "":
		return writeForecastTable(w, result, wr.Tail)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(result, horizon, historyPoints))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(result, horizon, historyPoints)); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, result.Rows)
	}
	return fmt.Errorf("unknown output format %q", wr.Format)
}

func writeForecastTable(w io.Writer, result *forecast.Result, tail int) error {
	rows := result.Rows
	if tail > 0 {
		rows = result.Tail(tail)
	}

	title := fmt.Sprintf("Forecast (%s)", result.Strategy)
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}
	if len(rows) < len(result.Rows) {
		fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("  last %d of %d rows", len(rows), len(result.Rows))))
	}

	t := numericTable("ds", "yhat", "yhat_lower", "yhat_upper")
	for _, row := range rows {
		t.Row(row.Timestamp.Format("2006-01-02"), round(row.Yhat), round(row.Lower), round(row.Upper))
	}
	return writeTable(w, t)
}

func writeCSV(w io.Writer, rows []forecast.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ds", "yhat", "yhat_lower", "yhat_upper"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Timestamp.Format("2006-01-02"),
			round(row.Yhat),
			round(row.Lower),
			round(row.Upper),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
