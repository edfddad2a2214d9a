package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Row is one forecast point with its prediction band.
type Row struct {
	Timestamp time.Time `json:"ds" yaml:"ds"`
	Yhat      float64   `json:"yhat" yaml:"yhat"`
	Lower     float64   `json:"yhat_lower" yaml:"yhat_lower"`
	Upper     float64   `json:"yhat_upper" yaml:"yhat_upper"`
}

// Result is the outcome of a forecast run.
//
// Seasonal results cover the history and the horizon; linear fallback results
// cover the horizon only.
type Result struct {
	Rows     []Row
	Strategy Strategy
	Model    Model
}

// Tail returns the last n rows.
func (r *Result) Tail(n int) []Row {
	if n <= 0 {
		return nil
	}
	if n > len(r.Rows) {
		n = len(r.Rows)
	}
	return r.Rows[len(r.Rows)-n:]
}

// After returns the rows dated strictly after ts.
func (r *Result) After(ts time.Time) []Row {
	for i, row := range r.Rows {
		if row.Timestamp.After(ts) {
			return r.Rows[i:]
		}
	}
	return nil
}

// validate checks that every row is finite and ordered lower <= yhat <= upper.
func (r *Result) validate() error {
	if len(r.Rows) == 0 {
		return errors.New("no rows produced")
	}
	for _, row := range r.Rows {
		for _, v := range []float64{row.Yhat, row.Lower, row.Upper} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("non-finite prediction at %s", row.Timestamp.Format("2006-01-02"))
			}
		}
		if row.Lower > row.Yhat || row.Yhat > row.Upper {
			return fmt.Errorf("prediction band out of order at %s", row.Timestamp.Format("2006-01-02"))
		}
	}
	return nil
}
