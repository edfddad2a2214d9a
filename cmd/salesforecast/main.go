// Command salesforecast forecasts daily grocery sales from a CSV of transactions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/config"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/logging"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	config *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "salesforecast",
		Short: "Forecast daily grocery sales",
		Long: `salesforecast reads a CSV with Date and Units_Sold columns, sums units per
day and forecasts future daily sales with a trend plus seasonality model. When
that model cannot be fitted it falls back to a linear trend.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.config = cfg

			level := cfg.LogLevel
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, cfg.Environment)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./configs/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newForecastCmd(a), newServeCmd(a))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
