package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Decomposition is a classical additive decomposition Y = T + S + R.
type Decomposition struct {
	Trend    []float64 // Centered moving average, NaN where the window does not fit
	Seasonal []float64
	Residual []float64 // NaN where Trend is NaN
	Pattern  []float64 // Seasonal effect of each position in the period, summing to zero
	Period   int
}

// Decompose splits equally spaced values into trend, seasonal and residual
// parts. It returns nil when there are fewer than two full periods.
func Decompose(values []float64, period int) *Decomposition {
	n := len(values)
	if period < 2 || n < 2*period {
		return nil
	}

	trend := centeredMovingAverage(values, period)

	pattern := make([]float64, period)
	counts := make([]int, period)
	for i, v := range values {
		if math.IsNaN(trend[i]) {
			continue
		}
		pattern[i%period] += v - trend[i]
		counts[i%period]++
	}
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
	}
	floats.AddConst(-stat.Mean(pattern, nil), pattern)

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i, v := range values {
		seasonal[i] = pattern[i%period]
		residual[i] = v - trend[i] - seasonal[i]
	}

	return &Decomposition{
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
		Pattern:  pattern,
		Period:   period,
	}
}

// centeredMovingAverage uses a 2xperiod average for even periods.
func centeredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := period / 2
	for i := half; i < n-half; i++ {
		sum := 0.0
		if period%2 == 0 {
			sum += 0.5*values[i-half] + 0.5*values[i+half]
			sum += floats.Sum(values[i-half+1 : i+half])
		} else {
			sum = floats.Sum(values[i-half : i+half+1])
		}
		trend[i] = sum / float64(period)
	}
	return trend
}

// Strength returns the seasonal strength F_S = max(0, 1 - Var(R)/Var(S+R)),
// computed over the positions where the residual is defined.
func (d *Decomposition) Strength() float64 {
	var r, sr []float64
	for i, v := range d.Residual {
		if math.IsNaN(v) {
			continue
		}
		r = append(r, v)
		sr = append(sr, d.Seasonal[i]+v)
	}
	if len(r) < 2 {
		return 0
	}

	varSR := stat.Variance(sr, nil)
	if varSR == 0 {
		return 0
	}
	return math.Max(0, 1-stat.Variance(r, nil)/varSR)
}
