package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/report"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

const defaultInput = "data/sample_sales.csv"

type forecastFlags struct {
	horizon     int
	format      string
	tail        int
	preview     int
	components  bool
	diagnostics bool
	noAggregate bool
	dateColumn  string
	valueColumn string
}

func newForecastCmd(a *app) *cobra.Command {
	f := &forecastFlags{}

	cmd := &cobra.Command{
		Use:   "forecast [file.csv]",
		Short: "Forecast daily units sold from a sales CSV",
		Long: `Reads the CSV (default: ` + defaultInput + `), sums units per day and prints
a history summary followed by the forecast.

Seasonal forecasts cover the history and the horizon; the linear fallback
covers the horizon only. The model used is printed with the table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultInput
			if len(args) == 1 {
				path = args[0]
			}
			return a.runForecast(cmd, f, path)
		},
	}

	cmd.Flags().IntVar(&f.horizon, "horizon", 30, "days to forecast")
	cmd.Flags().StringVar(&f.format, "format", "table", "output format: table, json, yaml or csv")
	cmd.Flags().IntVar(&f.tail, "tail", 10, "forecast rows shown in table format (0 shows all)")
	cmd.Flags().IntVar(&f.preview, "preview", 0, "raw rows to preview before the summary")
	cmd.Flags().BoolVar(&f.components, "components", false, "show trend and seasonal components of a seasonal forecast")
	cmd.Flags().BoolVar(&f.diagnostics, "diagnostics", false, "show the model fit summary and residual tests")
	cmd.Flags().BoolVar(&f.noAggregate, "no-aggregate", false, "keep same-day rows separate instead of summing them")
	cmd.Flags().StringVar(&f.dateColumn, "date-column", "", "date column name (default from config: Date)")
	cmd.Flags().StringVar(&f.valueColumn, "value-column", "", "units column name (default from config: Units_Sold)")
	return cmd
}

// applyFlags overrides configuration with the flags set on the command line.
func (a *app) applyFlags(cmd *cobra.Command, f *forecastFlags) {
	flags := cmd.Flags()
	if flags.Changed("horizon") {
		a.config.Forecast.Horizon = f.horizon
	}
	if flags.Changed("format") {
		a.config.Output.Format = f.format
	}
	if flags.Changed("tail") {
		a.config.Output.Tail = f.tail
	}
	if f.noAggregate {
		a.config.Input.Aggregate = false
	}
	if f.dateColumn != "" {
		a.config.Input.DateColumn = f.dateColumn
	}
	if f.valueColumn != "" {
		a.config.Input.ValueColumn = f.valueColumn
	}
}

func (a *app) runForecast(cmd *cobra.Command, f *forecastFlags, path string) error {
	a.applyFlags(cmd, f)
	cfg := a.config

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	table, err := timeseries.LoadTable(path, cfg.CSVOptions())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	series, err := timeseries.Prepare(table, cfg.Schema(), cfg.Input.Aggregate)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("series prepared",
		zap.String("path", path),
		zap.Int("rows", table.Len()),
		zap.Int("observations", series.Len()))

	engineConfig, err := cfg.EngineConfig()
	if err != nil {
		return err
	}
	engine := forecast.NewEngine(engineConfig, forecast.WithLogger(a.logger))

	result, err := engine.Forecast(series, cfg.Forecast.Horizon)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == report.FormatTable {
		if f.preview > 0 {
			if err := report.WritePreview(out, table, f.preview); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		if err := report.WriteHistory(out, report.Summarize(series)); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	writer := &report.Writer{Format: format, Tail: cfg.Output.Tail}
	if err := writer.Write(out, result, cfg.Forecast.Horizon, series.Len()); err != nil {
		return err
	}

	if f.diagnostics && format == report.FormatTable {
		fmt.Fprintln(out)
		if err := report.WriteDiagnostics(out, result); err != nil {
			return err
		}
	}

	if f.components {
		if format != report.FormatTable {
			fmt.Fprintln(cmd.ErrOrStderr(), report.Warning("components are only shown in table format"))
		} else {
			a.showComponents(cmd, result, cfg.Output.Tail)
		}
	}
	return nil
}

// showComponents prints the decomposition; failures are only warnings.
func (a *app) showComponents(cmd *cobra.Command, result *forecast.Result, tail int) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)

	err := report.WriteComponents(out, result, tail)
	if err == nil {
		return
	}
	if errors.Is(err, report.ErrNoComponents) {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Warning("components are only available for the "+string(forecast.StrategySeasonal)+" model"))
		return
	}
	a.logger.Warn("component decomposition failed", zap.Error(err))
	fmt.Fprintln(cmd.ErrOrStderr(), report.Warning(err.Error()))
}
