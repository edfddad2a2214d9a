// Package report renders sales histories and forecasts for people and programs.
package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/forecast"
)

// Format is an output format for forecast rows.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

// ErrNoComponents is returned when the model behind a forecast cannot be decomposed.
var ErrNoComponents = errors.New("forecast model has no seasonal components")

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json, yaml or csv)", s)
}

var (
	accent = lipgloss.Color("#8BC34A")
	warn   = lipgloss.Color("#FFB300")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(warn)
)

// Document is the machine-readable form of a forecast.
type Document struct {
	Model         forecast.Strategy `json:"model" yaml:"model"`
	Horizon       int               `json:"horizon" yaml:"horizon"`
	HistoryPoints int               `json:"history_points" yaml:"history_points"`
	Rows          []forecast.Row    `json:"rows" yaml:"rows"`
}

// NewDocument builds the document for a forecast of horizon days over historyPoints observations.
func NewDocument(result *forecast.Result, horizon, historyPoints int) *Document {
	return &Document{
		Model:         result.Strategy,
		Horizon:       horizon,
		HistoryPoints: historyPoints,
		Rows:          result.Rows,
	}
}

// round formats v with two decimals.
func round(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Warning formats a warning line.
func Warning(msg string) string {
	return warningStyle.Render("warning:") + " " + msg
}
