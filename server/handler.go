package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/report"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

var startTime = time.Now()

// Options controls how uploads are read.
type Options struct {
	Schema         timeseries.Schema
	CSV            *timeseries.CSVOptions
	Aggregate      bool
	DefaultHorizon int
	MaxUploadBytes int64
}

// ForecastHandler serves forecasts for uploaded sales CSVs.
type ForecastHandler struct {
	engine  *forecast.Engine
	options Options
	logger  *zap.Logger
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// ErrorResponse is the body of every failed request. Missing lists the
// required columns an upload lacked.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

// NewForecastHandler creates a handler forecasting with engine. A nil logger
// discards logs.
func NewForecastHandler(engine *forecast.Engine, options Options, logger *zap.Logger) *ForecastHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastHandler{
		engine:  engine,
		options: options,
		logger:  logger,
	}
}

// Health reports liveness.
func (h *ForecastHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	})
}

// Forecast reads a CSV upload, either as the raw request body or as the "file"
// field of a multipart form, and responds with the forecast document.
func (h *ForecastHandler) Forecast(c *gin.Context) {
	horizon := h.options.DefaultHorizon
	if raw := c.Query("horizon"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "horizon must be an integer"})
			return
		}
		horizon = n
	}
	if horizon <= 0 {
		h.fail(c, &forecast.InvalidHorizonError{Horizon: horizon})
		return
	}

	if h.options.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.options.MaxUploadBytes)
	}

	body, closeBody, err := h.upload(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer closeBody()

	table, err := timeseries.ReadTable(body, h.options.CSV)
	if err != nil {
		h.fail(c, err)
		return
	}

	series, err := timeseries.Prepare(table, h.options.Schema, h.options.Aggregate)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.engine.Forecast(series, horizon)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("forecast served",
		zap.String("model", string(result.Strategy)),
		zap.Int("history_points", series.Len()),
		zap.Int("horizon", horizon))
	c.JSON(http.StatusOK, report.NewDocument(result, horizon, series.Len()))
}

func (h *ForecastHandler) upload(c *gin.Context) (io.Reader, func(), error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return c.Request.Body, func() {}, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	var file multipart.File
	if file, err = header.Open(); err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}

// fail maps an error to its HTTP status.
func (h *ForecastHandler) fail(c *gin.Context, err error) {
	var (
		schemaErr  *timeseries.SchemaError
		horizonErr *forecast.InvalidHorizonError
		tooLarge   *http.MaxBytesError
	)

	status := http.StatusBadRequest
	resp := ErrorResponse{Error: err.Error()}
	switch {
	case errors.As(err, &schemaErr):
		status = http.StatusUnprocessableEntity
		resp.Missing = schemaErr.Missing
	case errors.Is(err, forecast.ErrInsufficientData):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &horizonErr):
		status = http.StatusBadRequest
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	}

	h.logger.Warn("forecast request rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, resp)
}
