package report

import (
	"fmt"
	"io"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
)

// WriteComponents writes the trend and seasonal decomposition of the last tail
// rows of a seasonal forecast. It returns ErrNoComponents for other models; the
// caller shows that as a warning rather than failing.
func WriteComponents(w io.Writer, result *forecast.Result, tail int) error {
	var model *forecast.SeasonalModel
	switch m := result.Model.(type) {
	case *forecast.SeasonalModel:
		model = m
	default:
		return fmt.Errorf("%w: %s", ErrNoComponents, result.Strategy)
	}

	rows := result.Rows
	if tail > 0 {
		rows = result.Tail(tail)
	}
	components, err := model.Decompose(rows)
	if err != nil {
		return fmt.Errorf("failed to decompose forecast: %w", err)
	}

	if _, err := fmt.Fprintln(w, titleStyle.Render("Components")); err != nil {
		return err
	}

	headers := append([]string{"ds", "trend"}, components.Names...)
	t := numericTable(headers...)
	for i, ts := range components.Timestamps {
		cells := []string{ts.Format("2006-01-02"), round(components.Trend[i])}
		for _, name := range components.Names {
			cells = append(cells, round(components.Seasonal[name][i]))
		}
		t.Row(cells...)
	}
	return writeTable(w, t)
}
