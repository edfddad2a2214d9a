package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ACF calculates the Autocorrelation Function of data.
// Returns ACF values for lags 0 to maxLag, or nil when data has no variance.
func ACF(data []float64, maxLag int) []float64 {
	n := len(data)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(data, nil)
	variance := 0.0
	for _, v := range data {
		diff := v - mean
		variance += diff * diff
	}

	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (data[i] - mean) * (data[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// SignificantLags returns the lags (excluding 0) whose autocorrelation falls
// outside the 95% band ±1.96/sqrt(n).
func SignificantLags(acf []float64, n int) []int {
	if n <= 0 {
		return nil
	}
	bound := 1.96 / math.Sqrt(float64(n))

	var significant []int
	for i := 1; i < len(acf); i++ {
		if math.Abs(acf[i]) > bound {
			significant = append(significant, i)
		}
	}
	return significant
}
