// Package linear implements the linear-trend sales model used as a fallback.
//
// The model regresses units sold on the number of days since the first
// observation and surrounds every forecast with a constant symmetric band:
//
//	padding = max(MinPadding, Multiplier * std(residuals))
//
// # Basic Usage
//
//	model := linear.New(nil) // MinPadding 5.0, Multiplier 1.96
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//
//	forecasts, _ := model.Predict(14)
//	dates := model.FutureDates(14)
//	for i := range forecasts {
//	    fmt.Println(dates[i], forecasts[i]-model.Padding, forecasts[i]+model.Padding)
//	}
//
// A single observation fits a flat line with zero residual spread, so the band
// falls back to MinPadding.
package linear
