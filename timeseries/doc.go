// Package timeseries provides the raw sales table and the canonical daily series.
//
// A Table is what a CSV upload looks like: a header and string cells. A Series is
// the normalized (ds, y) input every forecasting model consumes.
//
// # Loading
//
//	table, err := timeseries.LoadTable("data/sample_sales.csv", nil)
//
// # Normalizing
//
// Canonicalize checks that the date and units columns exist, drops rows whose date
// does not parse, turns unparsable units into zero and sorts by date:
//
//	series, err := timeseries.Canonicalize(table, timeseries.DefaultSchema())
//	var schemaErr *timeseries.SchemaError
//	if errors.As(err, &schemaErr) {
//	    // schemaErr.Missing lists the absent columns
//	}
//
// Several rows for the same day (one per item, say) are kept as separate points.
// Sum them first when a daily total is wanted:
//
//	daily, err := timeseries.AggregateDaily(table, timeseries.DefaultSchema())
//	series, err := timeseries.Canonicalize(daily, timeseries.DefaultSchema())
//
// # Statistics
//
//	mean := series.Mean()
//	weekly := series.MovingAverage(7)
package timeseries
