package seasonal

import (
	"errors"
	"fmt"
)

// Toggle switches a seasonal component on, off, or leaves it to the data.
type Toggle string

const (
	ToggleAuto Toggle = "auto"
	ToggleOn   Toggle = "on"
	ToggleOff  Toggle = "off"
)

// ParseToggle accepts on/off/auto and the boolean spellings true/false.
func ParseToggle(s string) (Toggle, error) {
	switch s {
	case "auto", "":
		return ToggleAuto, nil
	case "on", "true", "yes":
		return ToggleOn, nil
	case "off", "false", "no":
		return ToggleOff, nil
	}
	return "", fmt.Errorf("invalid seasonality toggle %q", s)
}

// Config holds configuration for the seasonal model.
type Config struct {
	Yearly Toggle // Yearly component (default: on)
	Weekly Toggle // Weekly component (default: auto, needs 14 days of history)
	Daily  Toggle // Daily component (default: on)

	YearlyOrder int // Fourier order of the yearly component (default: 10)
	WeeklyOrder int // Fourier order of the weekly component (default: 3)
	DailyOrder  int // Fourier order of the daily component (default: 4)

	NChangepoints         int     // Potential trend changepoints (default: 25)
	ChangepointRange      float64 // Share of history that may hold changepoints (default: 0.8)
	ChangepointPriorScale float64 // Prior scale of trend changes (default: 0.05)
	SeasonalityPriorScale float64 // Prior scale of Fourier coefficients (default: 10)
	TrendPriorScale       float64 // Prior scale of base intercept and slope (default: 5)
	IntervalWidth         float64 // Coverage of the prediction band (default: 0.8)
	MinObservations       int     // Observations required to fit (default: 2)
}

// DefaultConfig returns the default seasonal model configuration.
func DefaultConfig() *Config {
	return &Config{
		Yearly:                ToggleOn,
		Weekly:                ToggleAuto,
		Daily:                 ToggleOn,
		YearlyOrder:           10,
		WeeklyOrder:           3,
		DailyOrder:            4,
		NChangepoints:         25,
		ChangepointRange:      0.8,
		ChangepointPriorScale: 0.05,
		SeasonalityPriorScale: 10,
		TrendPriorScale:       5,
		IntervalWidth:         0.8,
		MinObservations:       2,
	}
}

// Validate checks that the configuration can produce a model.
func (c *Config) Validate() error {
	if c.YearlyOrder < 0 || c.WeeklyOrder < 0 || c.DailyOrder < 0 {
		return errors.New("fourier orders must not be negative")
	}
	if c.NChangepoints < 0 {
		return errors.New("number of changepoints must not be negative")
	}
	if c.ChangepointRange <= 0 || c.ChangepointRange > 1 {
		return fmt.Errorf("changepoint range must be in (0, 1], got %g", c.ChangepointRange)
	}
	if c.ChangepointPriorScale <= 0 || c.SeasonalityPriorScale <= 0 || c.TrendPriorScale <= 0 {
		return errors.New("prior scales must be positive")
	}
	if c.IntervalWidth <= 0 || c.IntervalWidth >= 1 {
		return fmt.Errorf("interval width must be in (0, 1), got %g", c.IntervalWidth)
	}
	return nil
}
