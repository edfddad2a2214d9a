package forecast

import (
	"time"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/linear"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/seasonal"
)

// Strategy is the identity label of the model that produced a forecast.
type Strategy string

const (
	// StrategySeasonal labels the trend plus seasonality model.
	StrategySeasonal Strategy = "Prophet"
	// StrategyLinear labels the linear-trend fallback.
	StrategyLinear Strategy = "LinearRegression (fallback)"
)

// Model is the fitted model behind a Result. It is either *SeasonalModel or
// *LinearModel; use a type switch to reach variant-specific capabilities.
type Model interface {
	Strategy() Strategy
	Residuals() []float64
	isModel()
}

// SeasonalModel is the handle of a seasonal fit. It can decompose forecasts.
type SeasonalModel struct {
	*seasonal.Model
}

func (*SeasonalModel) Strategy() Strategy { return StrategySeasonal }
func (*SeasonalModel) isModel()           {}

// Decompose splits the rows' predictions into trend and seasonal components.
func (m *SeasonalModel) Decompose(rows []Row) (*seasonal.Components, error) {
	timestamps := make([]time.Time, len(rows))
	for i, r := range rows {
		timestamps[i] = r.Timestamp
	}
	return m.Components(timestamps)
}

// LinearModel is the handle of a linear fallback fit.
type LinearModel struct {
	*linear.Model
}

func (*LinearModel) Strategy() Strategy { return StrategyLinear }
func (*LinearModel) isModel()           {}
