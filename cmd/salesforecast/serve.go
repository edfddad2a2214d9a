package main

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve forecasts over HTTP",
		Long: `Starts an HTTP server with two endpoints:

  POST /api/v1/forecast?horizon=N   CSV body or multipart "file" field
  GET  /health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			engineConfig, err := cfg.EngineConfig()
			if err != nil {
				return err
			}
			engine := forecast.NewEngine(engineConfig, forecast.WithLogger(a.logger))

			if cfg.Environment != "development" {
				gin.SetMode(gin.ReleaseMode)
			}
			handler := server.NewForecastHandler(engine, server.Options{
				Schema:         cfg.Schema(),
				CSV:            cfg.CSVOptions(),
				Aggregate:      cfg.Input.Aggregate,
				DefaultHorizon: cfg.Forecast.Horizon,
				MaxUploadBytes: cfg.Server.MaxUploadBytes,
			}, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg.Server.Port, server.NewRouter(handler), a.logger)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "listen port (default from config)")
	return cmd
}
