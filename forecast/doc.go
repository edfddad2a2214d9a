// Package forecast turns a canonical sales series into a forecast.
//
// The Engine tries the seasonal model first. If it fails for any reason the
// failure is logged and the linear-trend model runs instead, so a usable
// forecast is returned for any non-empty series. The Result's Strategy tells
// which model produced it.
//
// # Basic Usage
//
//	engine := forecast.NewEngine(nil, forecast.WithLogger(logger))
//	result, err := engine.Forecast(series, 30)
//	if err != nil {
//	    log.Fatal(err) // *InvalidHorizonError or ErrInsufficientData
//	}
//
//	for _, row := range result.Tail(10) {
//	    fmt.Println(row.Timestamp, row.Yhat, row.Lower, row.Upper)
//	}
//
// A seasonal result covers the history and the horizon; a fallback result
// covers the horizon only.
//
// # Components
//
// Only the seasonal model can be decomposed:
//
//	if m, ok := result.Model.(*forecast.SeasonalModel); ok {
//	    components, _ := m.Decompose(result.Rows)
//	}
package forecast
