package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const scenarioCSV = `Date,Item,Units_Sold,Price
2024-01-01,Milk,10,1.5
2024-01-02,Milk,12,1.5
2024-01-03,Milk,9,1.5
2024-01-04,Milk,14,1.5
2024-01-05,Milk,11,1.5
2024-01-06,Milk,13,1.5
2024-01-07,Milk,10,1.5
2024-01-08,Milk,15,1.5
2024-01-09,Milk,12,1.5
2024-01-10,Milk,14,1.5
`

type response struct {
	Model         string `json:"model"`
	Horizon       int    `json:"horizon"`
	HistoryPoints int    `json:"history_points"`
	Rows          []struct {
		Ds    time.Time `json:"ds"`
		Yhat  float64   `json:"yhat"`
		Lower float64   `json:"yhat_lower"`
		Upper float64   `json:"yhat_upper"`
	} `json:"rows"`
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

func newTestRouter(config *forecast.Config, maxBytes int64) *gin.Engine {
	h := NewForecastHandler(forecast.NewEngine(config), Options{
		Schema:         timeseries.DefaultSchema(),
		Aggregate:      true,
		DefaultHorizon: 30,
		MaxUploadBytes: maxBytes,
	}, zap.NewNop())
	return NewRouter(h)
}

func post(t *testing.T, router http.Handler, target, body, contentType string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestHealth(t *testing.T) {
	router := newTestRouter(nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestForecastFallback(t *testing.T) {
	config := forecast.DefaultConfig()
	config.DisableSeasonal = true
	router := newTestRouter(config, 0)

	w, resp := post(t, router, "/api/v1/forecast?horizon=5", scenarioCSV, "text/csv")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "LinearRegression (fallback)", resp.Model)
	assert.Equal(t, 5, resp.Horizon)
	assert.Equal(t, 10, resp.HistoryPoints)
	require.Len(t, resp.Rows, 5)
	assert.True(t, resp.Rows[0].Ds.Equal(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, resp.Rows[4].Ds.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	for _, row := range resp.Rows {
		assert.GreaterOrEqual(t, row.Upper-row.Lower, 10.0-1e-9)
	}
}

func TestForecastSeasonalDefaultHorizon(t *testing.T) {
	router := newTestRouter(nil, 0)

	w, resp := post(t, router, "/api/v1/forecast", scenarioCSV, "text/csv")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Prophet", resp.Model)
	assert.Equal(t, 30, resp.Horizon)
	assert.Len(t, resp.Rows, 10+30)
}

func TestForecastMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "sales.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(scenarioCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w, resp := post(t, newTestRouter(nil, 0), "/api/v1/forecast?horizon=3", body.String(), mw.FormDataContentType())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, resp.Horizon)
	assert.Equal(t, 10, resp.HistoryPoints)
}

func TestForecastErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		body    string
		status  int
		missing []string
	}{
		{"missing columns", "/api/v1/forecast", "Day,Qty\n2024-01-01,3\n", http.StatusUnprocessableEntity, []string{"Date", "Units_Sold"}},
		{"missing units", "/api/v1/forecast", "Date,Qty\n2024-01-01,3\n", http.StatusUnprocessableEntity, []string{"Units_Sold"}},
		{"no valid rows", "/api/v1/forecast", "Date,Units_Sold\nsoon,3\n", http.StatusUnprocessableEntity, nil},
		{"zero horizon", "/api/v1/forecast?horizon=0", scenarioCSV, http.StatusBadRequest, nil},
		{"negative horizon", "/api/v1/forecast?horizon=-2", scenarioCSV, http.StatusBadRequest, nil},
		{"non-numeric horizon", "/api/v1/forecast?horizon=week", scenarioCSV, http.StatusBadRequest, nil},
		{"empty body", "/api/v1/forecast", "", http.StatusBadRequest, nil},
	}

	router := newTestRouter(nil, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := post(t, router, tt.target, tt.body, "text/csv")
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.missing, resp.Missing)
		})
	}
}

type trackingBody struct {
	io.Reader
	read bool
}

func (b *trackingBody) Read(p []byte) (int, error) {
	b.read = true
	return b.Reader.Read(p)
}

func TestForecastRejectsHorizonBeforeReadingBody(t *testing.T) {
	router := newTestRouter(nil, 0)

	for _, target := range []string{"/api/v1/forecast?horizon=0", "/api/v1/forecast?horizon=-3"} {
		body := &trackingBody{Reader: strings.NewReader("Day,Qty\n2024-01-01,3\n")}
		req := httptest.NewRequest(http.MethodPost, target, body)
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.False(t, body.read, target)

		var resp response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "horizon must be a positive number of days")
		assert.Empty(t, resp.Missing)
	}
}

func TestForecastTooLarge(t *testing.T) {
	w, _ := post(t, newTestRouter(nil, 64), "/api/v1/forecast", scenarioCSV, "text/csv")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRunShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, 0, newTestRouter(nil, 0), zap.NewNop())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
