package forecast

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/linear"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/seasonal"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

// Forecaster is one forecasting strategy.
type Forecaster interface {
	Name() Strategy
	Forecast(series *timeseries.Series, horizon int) (*Result, error)
}

// Config holds configuration for the engine's strategies.
type Config struct {
	Seasonal        *seasonal.Config
	Linear          *linear.Config
	DisableSeasonal bool // Go straight to the linear strategy
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Seasonal: seasonal.DefaultConfig(),
		Linear:   linear.DefaultConfig(),
	}
}

// Engine runs the primary strategy and falls back to the linear one when it fails.
// An Engine holds no per-call state and may be shared between goroutines.
type Engine struct {
	primary  Forecaster
	fallback Forecaster
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPrimary replaces the primary strategy.
func WithPrimary(f Forecaster) Option {
	return func(e *Engine) {
		e.primary = f
	}
}

// NewEngine creates an engine. A nil config uses DefaultConfig.
func NewEngine(config *Config, opts ...Option) *Engine {
	if config == nil {
		config = DefaultConfig()
	}

	e := &Engine{
		fallback: NewLinearForecaster(config.Linear),
		logger:   zap.NewNop(),
	}
	if !config.DisableSeasonal {
		e.primary = NewSeasonalForecaster(config.Seasonal)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Forecast forecasts horizon days past the end of series.
//
// Only an invalid horizon or an empty series is reported. A failing primary
// strategy is logged and replaced by the fallback; the result's Strategy tells
// which one ran.
func (e *Engine) Forecast(series *timeseries.Series, horizon int) (*Result, error) {
	if horizon <= 0 {
		return nil, &InvalidHorizonError{Horizon: horizon}
	}
	if series == nil || series.Len() == 0 {
		return nil, ErrInsufficientData
	}

	if e.primary != nil {
		result, err := e.run(e.primary, series, horizon)
		if err == nil {
			e.logger.Debug("forecast complete",
				zap.String("strategy", string(result.Strategy)),
				zap.Int("observations", series.Len()),
				zap.Int("rows", len(result.Rows)))
			return result, nil
		}
		cause := err
		var fitErr *FitError
		if errors.As(err, &fitErr) {
			cause = fitErr.Err
		}
		e.logger.Warn("primary strategy failed, falling back",
			zap.String("strategy", string(e.primary.Name())),
			zap.Int("observations", series.Len()),
			zap.Error(cause))
	}

	result, err := e.run(e.fallback, series, horizon)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("forecast complete",
		zap.String("strategy", string(result.Strategy)),
		zap.Int("observations", series.Len()),
		zap.Int("rows", len(result.Rows)))
	return result, nil
}

// run executes one strategy on its own copy of the series, converting panics
// and malformed results into a FitError.
func (e *Engine) run(f Forecaster, series *timeseries.Series, horizon int) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &FitError{Strategy: f.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	result, err = f.Forecast(series.Copy(), horizon)
	if err != nil {
		return nil, &FitError{Strategy: f.Name(), Err: err}
	}
	if result == nil {
		return nil, &FitError{Strategy: f.Name(), Err: errors.New("no result")}
	}
	if err := result.validate(); err != nil {
		return nil, &FitError{Strategy: f.Name(), Err: err}
	}
	return result, nil
}

type seasonalForecaster struct {
	config *seasonal.Config
}

// NewSeasonalForecaster returns the trend plus seasonality strategy.
func NewSeasonalForecaster(config *seasonal.Config) Forecaster {
	return &seasonalForecaster{config: config}
}

func (f *seasonalForecaster) Name() Strategy { return StrategySeasonal }

func (f *seasonalForecaster) Forecast(series *timeseries.Series, horizon int) (*Result, error) {
	model := seasonal.New(f.config)
	if err := model.Fit(series); err != nil {
		return nil, err
	}

	dates, err := model.MakeFuture(horizon)
	if err != nil {
		return nil, err
	}
	points, err := model.Predict(dates)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(points))
	for i, p := range points {
		rows[i] = Row{Timestamp: p.Timestamp, Yhat: p.Yhat, Lower: p.Lower, Upper: p.Upper}
	}
	return &Result{Rows: rows, Strategy: StrategySeasonal, Model: &SeasonalModel{Model: model}}, nil
}

type linearForecaster struct {
	config *linear.Config
}

// NewLinearForecaster returns the linear-trend fallback strategy.
func NewLinearForecaster(config *linear.Config) Forecaster {
	return &linearForecaster{config: config}
}

func (f *linearForecaster) Name() Strategy { return StrategyLinear }

func (f *linearForecaster) Forecast(series *timeseries.Series, horizon int) (*Result, error) {
	model := linear.New(f.config)
	if err := model.Fit(series); err != nil {
		return nil, err
	}

	forecasts, err := model.Predict(horizon)
	if err != nil {
		return nil, err
	}
	dates := model.FutureDates(horizon)

	rows := make([]Row, horizon)
	for i := range rows {
		rows[i] = Row{
			Timestamp: dates[i],
			Yhat:      forecasts[i],
			Lower:     forecasts[i] - model.Padding,
			Upper:     forecasts[i] + model.Padding,
		}
	}
	return &Result{Rows: rows, Strategy: StrategyLinear, Model: &LinearModel{Model: model}}, nil
}
