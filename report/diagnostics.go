package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/stats"
)

// WriteDiagnostics writes the fit summary and residual tests of the model behind result.
func WriteDiagnostics(w io.Writer, result *forecast.Result) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Model diagnostics")); err != nil {
		return err
	}
	t := keyValueTable()
	line := func(label, value string) {
		t.Row(label, value)
	}

	line("model", string(result.Strategy))
	switch m := result.Model.(type) {
	case *forecast.SeasonalModel:
		s := m.Summary()
		names := make([]string, len(s.Seasonalities))
		for i, season := range s.Seasonalities {
			names[i] = fmt.Sprintf("%s(%d)", season.Name, season.Order)
		}
		if len(names) == 0 {
			names = append(names, "none")
		}
		line("seasonalities", strings.Join(names, ", "))
		line("changepoints", fmt.Sprint(s.Changepoints))
		line("observations", fmt.Sprint(s.NObs))
		line("residual std", round(s.ResidualStd))
		line("rmse", round(s.RMSE))
		line("mae", round(s.MAE))
		line("ljung-box", ljungBox(s.LjungBox))
	case *forecast.LinearModel:
		s := m.Summary()
		line("slope", round(s.Slope)+" units/day")
		line("intercept", round(s.Intercept))
		line("band", "±"+round(s.Padding))
		if fitted := m.FittedValues(); len(fitted) > 0 {
			line("last fitted", round(fitted[len(fitted)-1]))
		}
		line("observations", fmt.Sprint(s.NObs))
		line("residual std", round(s.ResidualStd))
		line("rmse", round(s.RMSE))
		line("mae", round(s.MAE))
		line("ljung-box", ljungBox(s.LjungBox))
		if s.DurbinWatson != nil {
			line("durbin-watson", round(s.DurbinWatson.Statistic))
		}
	}
	return writeTable(w, t)
}

func ljungBox(lb *stats.LjungBoxResult) string {
	if lb == nil {
		return "n/a"
	}
	return fmt.Sprintf("Q=%s p=%s (lags %d)", round(lb.Statistic), round(lb.PValue), lb.Lags)
}
