package forecast

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned for a series without observations.
var ErrInsufficientData = errors.New("insufficient data: series has no observations")

// InvalidHorizonError reports a horizon that is not a positive number of days.
type InvalidHorizonError struct {
	Horizon int
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("horizon must be a positive number of days, got %d", e.Horizon)
}

// FitError wraps a failure of one strategy. The engine absorbs it by falling
// back; it only reaches callers that run a Forecaster directly.
type FitError struct {
	Strategy Strategy
	Err      error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}
