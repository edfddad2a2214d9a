// Package config loads salesforecast settings from defaults, an optional YAML
// file and SALESFORECAST_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/linear"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/seasonal"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

// EnvPrefix prefixes every environment override, e.g. SALESFORECAST_FORECAST_HORIZON.
const EnvPrefix = "SALESFORECAST"

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Input       InputConfig    `mapstructure:"input"`
	Forecast    ForecastConfig `mapstructure:"forecast"`
	Seasonal    SeasonalConfig `mapstructure:"seasonal"`
	Fallback    FallbackConfig `mapstructure:"fallback"`
	Server      ServerConfig   `mapstructure:"server"`
	Output      OutputConfig   `mapstructure:"output"`
}

type InputConfig struct {
	DateColumn  string `mapstructure:"date_column"`
	ValueColumn string `mapstructure:"value_column"`
	DateFormat  string `mapstructure:"date_format"`
	Delimiter   string `mapstructure:"delimiter"`
	Aggregate   bool   `mapstructure:"aggregate"`
}

type ForecastConfig struct {
	Horizon int `mapstructure:"horizon"`
}

type SeasonalConfig struct {
	Enabled               bool    `mapstructure:"enabled"`
	Yearly                string  `mapstructure:"yearly"`
	Weekly                string  `mapstructure:"weekly"`
	Daily                 string  `mapstructure:"daily"`
	YearlyOrder           int     `mapstructure:"yearly_order"`
	WeeklyOrder           int     `mapstructure:"weekly_order"`
	DailyOrder            int     `mapstructure:"daily_order"`
	NChangepoints         int     `mapstructure:"n_changepoints"`
	ChangepointRange      float64 `mapstructure:"changepoint_range"`
	ChangepointPriorScale float64 `mapstructure:"changepoint_prior_scale"`
	SeasonalityPriorScale float64 `mapstructure:"seasonality_prior_scale"`
	TrendPriorScale       float64 `mapstructure:"trend_prior_scale"`
	IntervalWidth         float64 `mapstructure:"interval_width"`
	MinObservations       int     `mapstructure:"min_observations"`
}

type FallbackConfig struct {
	MinPadding float64 `mapstructure:"min_padding"`
	Multiplier float64 `mapstructure:"multiplier"`
}

type ServerConfig struct {
	Port           int   `mapstructure:"port"`
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Tail   int    `mapstructure:"tail"`
}

// Load reads the configuration. An empty path searches ./configs and the
// working directory for config.yaml; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// General
	v.SetDefault("environment", "production")
	v.SetDefault("log_level", "info")

	// Input
	schema := timeseries.DefaultSchema()
	v.SetDefault("input.date_column", schema.DateColumn)
	v.SetDefault("input.value_column", schema.ValueColumn)
	v.SetDefault("input.date_format", "")
	v.SetDefault("input.delimiter", ",")
	v.SetDefault("input.aggregate", true)

	v.SetDefault("forecast.horizon", 30)

	// Seasonal model
	s := seasonal.DefaultConfig()
	v.SetDefault("seasonal.enabled", true)
	v.SetDefault("seasonal.yearly", string(s.Yearly))
	v.SetDefault("seasonal.weekly", string(s.Weekly))
	v.SetDefault("seasonal.daily", string(s.Daily))
	v.SetDefault("seasonal.yearly_order", s.YearlyOrder)
	v.SetDefault("seasonal.weekly_order", s.WeeklyOrder)
	v.SetDefault("seasonal.daily_order", s.DailyOrder)
	v.SetDefault("seasonal.n_changepoints", s.NChangepoints)
	v.SetDefault("seasonal.changepoint_range", s.ChangepointRange)
	v.SetDefault("seasonal.changepoint_prior_scale", s.ChangepointPriorScale)
	v.SetDefault("seasonal.seasonality_prior_scale", s.SeasonalityPriorScale)
	v.SetDefault("seasonal.trend_prior_scale", s.TrendPriorScale)
	v.SetDefault("seasonal.interval_width", s.IntervalWidth)
	v.SetDefault("seasonal.min_observations", s.MinObservations)

	// Linear fallback
	l := linear.DefaultConfig()
	v.SetDefault("fallback.min_padding", l.MinPadding)
	v.SetDefault("fallback.multiplier", l.Multiplier)

	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", 10<<20)

	// Output
	v.SetDefault("output.format", "table")
	v.SetDefault("output.tail", 10)
}

// Validate checks values that the model packages do not check themselves.
func (c *Config) Validate() error {
	if c.Forecast.Horizon <= 0 {
		return fmt.Errorf("forecast.horizon must be positive, got %d", c.Forecast.Horizon)
	}
	if c.Fallback.MinPadding < 0 || c.Fallback.Multiplier < 0 {
		return errors.New("fallback padding settings must not be negative")
	}
	if len([]rune(c.Input.Delimiter)) != 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	for _, s := range []string{c.Seasonal.Yearly, c.Seasonal.Weekly, c.Seasonal.Daily} {
		if _, err := seasonal.ParseToggle(s); err != nil {
			return err
		}
	}
	if _, err := c.SeasonalConfig(); err != nil {
		return err
	}
	return nil
}

// Schema returns the input schema.
func (c *Config) Schema() timeseries.Schema {
	return timeseries.Schema{
		DateColumn:  c.Input.DateColumn,
		ValueColumn: c.Input.ValueColumn,
		DateFormat:  c.Input.DateFormat,
	}
}

// CSVOptions returns the CSV reader options.
func (c *Config) CSVOptions() *timeseries.CSVOptions {
	opts := timeseries.DefaultCSVOptions()
	if r := []rune(c.Input.Delimiter); len(r) == 1 {
		opts.Delimiter = r[0]
	}
	return opts
}

// SeasonalConfig converts the seasonal section into a model configuration.
func (c *Config) SeasonalConfig() (*seasonal.Config, error) {
	yearly, err := seasonal.ParseToggle(c.Seasonal.Yearly)
	if err != nil {
		return nil, err
	}
	weekly, err := seasonal.ParseToggle(c.Seasonal.Weekly)
	if err != nil {
		return nil, err
	}
	daily, err := seasonal.ParseToggle(c.Seasonal.Daily)
	if err != nil {
		return nil, err
	}

	sc := &seasonal.Config{
		Yearly:                yearly,
		Weekly:                weekly,
		Daily:                 daily,
		YearlyOrder:           c.Seasonal.YearlyOrder,
		WeeklyOrder:           c.Seasonal.WeeklyOrder,
		DailyOrder:            c.Seasonal.DailyOrder,
		NChangepoints:         c.Seasonal.NChangepoints,
		ChangepointRange:      c.Seasonal.ChangepointRange,
		ChangepointPriorScale: c.Seasonal.ChangepointPriorScale,
		SeasonalityPriorScale: c.Seasonal.SeasonalityPriorScale,
		TrendPriorScale:       c.Seasonal.TrendPriorScale,
		IntervalWidth:         c.Seasonal.IntervalWidth,
		MinObservations:       c.Seasonal.MinObservations,
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seasonal config: %w", err)
	}
	return sc, nil
}

// EngineConfig returns the forecast engine configuration.
func (c *Config) EngineConfig() (*forecast.Config, error) {
	sc, err := c.SeasonalConfig()
	if err != nil {
		return nil, err
	}
	return &forecast.Config{
		Seasonal: sc,
		Linear: &linear.Config{
			MinPadding: c.Fallback.MinPadding,
			Multiplier: c.Fallback.Multiplier,
		},
		DisableSeasonal: !c.Seasonal.Enabled,
	}, nil
}
