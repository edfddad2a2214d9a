// Package stats provides residual diagnostics for fitted sales models.
//
// # Residual Spread
//
// Spread is the population standard deviation used to size prediction bands.
// It never returns NaN, so degenerate fits (a single observation) yield 0:
//
//	sigma := stats.Spread(model.Residuals())
//
// # Autocorrelation
//
//	acf := stats.ACF(residuals, 14)
//	lags := stats.SignificantLags(acf, len(residuals))
//
// # Diagnostic Tests
//
//	// Ljung-Box test, H0: residuals are uncorrelated up to the given lag
//	lb := stats.LjungBox(residuals, 10, 2)
//	if lb != nil && lb.PValue < 0.05 {
//	    // structure left in the residuals
//	}
//
//	dw := stats.DurbinWatson(residuals)
//
// # Decomposition
//
// Classical additive decomposition of equally spaced values, used to describe
// the weekly shape of a sales history:
//
//	d := stats.Decompose(values, 7)
//	if d != nil && d.Strength() > 0.64 {
//	    // strongly weekly
//	}
//
// # Error Metrics
//
//	rmse := stats.RMSE(residuals)
//	mae := stats.MAE(residuals)
package stats
