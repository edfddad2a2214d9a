package linear

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/stats"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

// Config holds the interval settings of the linear model.
type Config struct {
	MinPadding float64 // Smallest half-width of the prediction band (default: 5.0)
	Multiplier float64 // Residual std multiplier, ~95% under normality (default: 1.96)
}

// DefaultConfig returns the default linear model configuration.
func DefaultConfig() *Config {
	return &Config{
		MinPadding: 5.0,
		Multiplier: 1.96,
	}
}

// Model is a least-squares line of units sold against days elapsed since the
// first observation.
type Model struct {
	Intercept float64
	Slope     float64 // Units per day
	Padding   float64 // Half-width of the symmetric prediction band

	config     *Config
	fitted     bool
	origin     time.Time
	last       time.Time
	lastIndex  int
	residuals  []float64
	fittedVals []float64
}

// New creates a linear model. A nil config uses DefaultConfig.
func New(config *Config) *Model {
	if config == nil {
		config = DefaultConfig()
	}
	return &Model{config: config}
}

// Fit fits the line to the series.
//
// The day index of an observation is the number of whole days since the
// earliest timestamp, so gaps in the calendar show up as jumps in the index.
// A series with a single distinct day gets a flat line through the mean.
func (m *Model) Fit(series *timeseries.Series) error {
	n := series.Len()
	if n == 0 {
		return errors.New("cannot fit a line to an empty series")
	}
	if len(series.Timestamps) != n {
		return errors.New("series timestamps and values differ in length")
	}

	m.origin, m.last = series.Timestamps[0], series.Timestamps[0]
	for _, ts := range series.Timestamps[1:] {
		if ts.Before(m.origin) {
			m.origin = ts
		}
		if ts.After(m.last) {
			m.last = ts
		}
	}
	m.lastIndex = timeseries.DaysBetween(m.origin, m.last)

	x := make([]float64, n)
	for i, ts := range series.Timestamps {
		x[i] = float64(timeseries.DaysBetween(m.origin, ts))
	}
	y := series.Values

	if stat.Variance(x, nil) > 0 {
		m.Intercept, m.Slope = stat.LinearRegression(x, y, nil, false)
	} else {
		m.Intercept, m.Slope = stat.Mean(y, nil), 0
	}
	if math.IsNaN(m.Intercept) || math.IsNaN(m.Slope) {
		return errors.New("linear regression produced non-finite coefficients")
	}

	m.fittedVals = make([]float64, n)
	m.residuals = make([]float64, n)
	for i := range x {
		m.fittedVals[i] = m.PredictAt(x[i])
		m.residuals[i] = y[i] - m.fittedVals[i]
	}

	m.Padding = math.Max(m.config.MinPadding, stats.Spread(m.residuals)*m.config.Multiplier)
	m.fitted = true
	return nil
}

// PredictAt evaluates the line at a day index.
func (m *Model) PredictAt(dayIndex float64) float64 {
	return m.Intercept + m.Slope*dayIndex
}

// Predict returns point forecasts for the steps days after the last observation.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before prediction")
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	forecasts := make([]float64, steps)
	for h := 0; h < steps; h++ {
		forecasts[h] = m.PredictAt(float64(m.lastIndex + 1 + h))
	}
	return forecasts, nil
}

// FutureDates returns the steps calendar days following the last observation.
func (m *Model) FutureDates(steps int) []time.Time {
	if steps < 1 {
		return nil
	}
	dates := make([]time.Time, steps)
	for h := range dates {
		dates[h] = m.last.AddDate(0, 0, h+1)
	}
	return dates
}

// Residuals returns the in-sample residuals (observed minus fitted).
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the in-sample predictions.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// Summary describes a fitted linear model.
type Summary struct {
	Intercept    float64
	Slope        float64
	Padding      float64
	ResidualStd  float64
	RMSE         float64
	MAE          float64
	NObs         int
	Origin       time.Time
	LjungBox     *stats.LjungBoxResult // nil with fewer than 10 observations
	DurbinWatson *stats.DurbinWatsonResult
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	return &Summary{
		Intercept:    m.Intercept,
		Slope:        m.Slope,
		Padding:      m.Padding,
		ResidualStd:  stats.Spread(m.residuals),
		RMSE:         stats.RMSE(m.residuals),
		MAE:          stats.MAE(m.residuals),
		NObs:         len(m.residuals),
		Origin:       m.origin,
		LjungBox:     stats.LjungBox(m.residuals, 10, 2),
		DurbinWatson: stats.DurbinWatson(m.residuals),
	}
}
