// Package salespredictor forecasts daily grocery sales.
//
// Sales transactions are read from CSV, summed per day and forecast with an
// additive trend plus seasonality model. When that model cannot be fitted a
// linear trend with a constant band is used instead, so any non-empty history
// produces a forecast.
//
// # Packages
//
//   - timeseries: CSV tables, daily aggregation and the canonical (ds, y) series
//   - seasonal: piecewise-linear trend with yearly, weekly and daily seasonality
//   - linear: the linear-trend fallback model
//   - forecast: the engine that chooses between them
//   - stats: residual diagnostics and classical decomposition
//   - report: text, JSON, YAML and CSV rendering
//   - server: the HTTP API
//   - config, logging: configuration and structured logging
//
// # Quick Start
//
//	table, _ := timeseries.LoadTable("data/sample_sales.csv", nil)
//	series, _ := timeseries.Prepare(table, timeseries.DefaultSchema(), true)
//
//	engine := forecast.NewEngine(nil)
//	result, err := engine.Forecast(series, 30)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Strategy) // "Prophet" or "LinearRegression (fallback)"
//
// # Command Line
//
//	salesforecast forecast data/sample_sales.csv --horizon 14 --components
//	salesforecast serve --port 8080
package salespredictor
