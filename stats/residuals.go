package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Spread returns the population standard deviation of residuals.
// Empty input and non-finite results count as 0.
func Spread(residuals []float64) float64 {
	if len(residuals) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(residuals, nil)
	if math.IsNaN(std) || math.IsInf(std, 0) {
		return 0
	}
	return std
}

// RMSE returns the root mean squared error of residuals.
func RMSE(residuals []float64) float64 {
	if len(residuals) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range residuals {
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(residuals)))
}

// MAE returns the mean absolute error of residuals.
func MAE(residuals []float64) float64 {
	if len(residuals) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range residuals {
		sum += math.Abs(r)
	}
	return sum / float64(len(residuals))
}
