// Package seasonal implements an additive trend plus seasonality model for daily sales.
//
// The model decomposes units sold as
//
//	y(t) = g(t) + s_yearly(t) + s_weekly(t) + s_daily(t) + e(t)
//
// where g is a piecewise-linear trend whose slope may change at evenly spaced
// changepoints over the first 80% of the history, and each s is a truncated
// Fourier series. All coefficients carry Gaussian priors (Laplace-like for the
// changepoint deltas), so the fit is a ridge-penalized least-squares problem
// solved by Cholesky factorization.
//
// # Basic Usage
//
//	model := seasonal.New(nil) // yearly on, weekly auto, daily on
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//
//	dates, _ := model.MakeFuture(30) // history plus 30 future days
//	points, _ := model.Predict(dates)
//	for _, p := range points {
//	    fmt.Println(p.Timestamp, p.Yhat, p.Lower, p.Upper)
//	}
//
// # Seasonalities
//
// Each seasonality can be forced on or off, or left to Auto:
//
//	config := seasonal.DefaultConfig()
//	config.Yearly = seasonal.ToggleOff
//	config.Weekly = seasonal.ToggleOn
//
// In Auto mode yearly seasonality needs two years of history, weekly two weeks
// of sub-weekly observations and daily two days of sub-daily observations.
//
// # Uncertainty
//
// The band covers IntervalWidth of the predictive distribution. Beyond the
// history it widens with the expected effect of future trend changes.
//
// # Components
//
//	components, _ := model.Components(dates)
//	weekly := components.Seasonal[seasonal.ComponentWeekly]
package seasonal
