package seasonal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/stats"
	"github.com/sourcebysam/AI-Grocery-Sales-Predictor/timeseries"
)

// Seasonality is a periodic component expressed as a Fourier series.
type Seasonality struct {
	Name   string
	Period float64 // In days
	Order  int
}

// Component names.
const (
	ComponentTrend  = "trend"
	ComponentYearly = "yearly"
	ComponentWeekly = "weekly"
	ComponentDaily  = "daily"
)

// sigmaFloor bounds the noise estimate used to weigh the priors, in scaled units.
const sigmaFloor = 0.1

var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Model is a piecewise-linear trend with Fourier seasonalities, fitted as a
// penalized least-squares problem. Each coefficient has a Gaussian prior whose
// scale comes from Config, so short histories still yield a unique solution.
type Model struct {
	Config        *Config
	Seasonalities []Seasonality
	Changepoints  []time.Time
	Intercept     float64   // Scaled units
	Slope         float64   // Scaled units per unit of scaled time
	Deltas        []float64 // Slope changes at each changepoint
	Sigma         float64   // In-sample residual std, scaled units

	fitted     bool
	history    *timeseries.Series
	start      time.Time
	spanDays   float64
	yScale     float64
	cpT        []float64
	seasonBeta [][]float64
	z          float64
	residuals  []float64
}

// New creates a seasonal model. A nil config uses DefaultConfig.
func New(config *Config) *Model {
	if config == nil {
		config = DefaultConfig()
	}
	return &Model{Config: config}
}

// Fit fits the model to the series.
func (m *Model) Fit(series *timeseries.Series) error {
	if err := m.Config.Validate(); err != nil {
		return err
	}

	n := series.Len()
	minObs := m.Config.MinObservations
	if minObs < 2 {
		minObs = 2
	}
	if n < minObs {
		return fmt.Errorf("insufficient data: need at least %d observations, got %d", minObs, n)
	}
	if len(series.Timestamps) != n {
		return errors.New("series timestamps and values differ in length")
	}
	if !series.IsSorted() {
		return errors.New("series must be sorted by timestamp")
	}
	for _, v := range series.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("series contains non-finite values")
		}
	}

	m.history = series.Copy()
	m.start = series.First()
	m.spanDays = series.Last().Sub(m.start).Hours() / 24
	if m.spanDays <= 0 {
		return errors.New("series must span more than a single timestamp")
	}

	m.yScale = 0
	for _, v := range series.Values {
		m.yScale = math.Max(m.yScale, math.Abs(v))
	}
	if m.yScale == 0 {
		m.yScale = 1
	}

	t := make([]float64, n)
	y := make([]float64, n)
	for i, ts := range series.Timestamps {
		t[i] = m.scaledTime(ts)
		y[i] = series.Values[i] / m.yScale
	}

	m.placeChangepoints(t)
	m.Seasonalities = m.resolveSeasonalities(series)

	X := mat.NewDense(n, m.width(), nil)
	for i, ts := range series.Timestamps {
		X.SetRow(i, m.features(ts))
	}
	yVec := mat.NewVecDense(n, y)

	// First pass weighs the priors against a unit-free noise floor, the
	// second against the noise actually left in the residuals.
	beta, err := m.solve(X, yVec, sigmaFloor)
	if err != nil {
		return err
	}
	sigma := stats.Spread(residualsOf(X, beta, y))
	beta, err = m.solve(X, yVec, math.Max(sigma, sigmaFloor))
	if err != nil {
		return err
	}

	m.unpack(beta)
	scaled := residualsOf(X, beta, y)
	m.Sigma = stats.Spread(scaled)
	m.residuals = make([]float64, n)
	for i, r := range scaled {
		m.residuals[i] = r * m.yScale
	}

	m.z = distuv.UnitNormal.Quantile(0.5 + m.Config.IntervalWidth/2)
	m.fitted = true
	return nil
}

// placeChangepoints spreads potential changepoints evenly over the first
// ChangepointRange of history, skipping the first observation.
func (m *Model) placeChangepoints(t []float64) {
	m.cpT = nil
	m.Changepoints = nil

	histSize := int(math.Floor(float64(len(t)) * m.Config.ChangepointRange))
	nCP := m.Config.NChangepoints
	if nCP+1 > histSize {
		nCP = histSize - 1
	}
	if nCP <= 0 {
		return
	}

	for k := 1; k <= nCP; k++ {
		idx := int(math.Round(float64(k) * float64(histSize-1) / float64(nCP)))
		m.cpT = append(m.cpT, t[idx])
		m.Changepoints = append(m.Changepoints, m.history.Timestamps[idx])
	}
}

// resolveSeasonalities applies the toggles, deciding "auto" from the history.
func (m *Model) resolveSeasonalities(series *timeseries.Series) []Seasonality {
	minStep := math.Inf(1)
	for i := 1; i < series.Len(); i++ {
		step := series.Timestamps[i].Sub(series.Timestamps[i-1]).Hours() / 24
		if step > 0 {
			minStep = math.Min(minStep, step)
		}
	}

	candidates := []struct {
		toggle Toggle
		season Seasonality
		auto   bool
	}{
		{m.Config.Yearly, Seasonality{ComponentYearly, 365.25, m.Config.YearlyOrder}, m.spanDays >= 730},
		{m.Config.Weekly, Seasonality{ComponentWeekly, 7, m.Config.WeeklyOrder}, m.spanDays >= 14 && minStep < 7},
		{m.Config.Daily, Seasonality{ComponentDaily, 1, m.Config.DailyOrder}, m.spanDays >= 2 && minStep < 1},
	}

	var out []Seasonality
	for _, c := range candidates {
		if c.season.Order == 0 {
			continue
		}
		if c.toggle == ToggleOn || (c.toggle == ToggleAuto && c.auto) {
			out = append(out, c.season)
		}
	}
	return out
}

func (m *Model) scaledTime(ts time.Time) float64 {
	return ts.Sub(m.start).Hours() / 24 / m.spanDays
}

// width is the number of regression columns.
func (m *Model) width() int {
	w := 2 + len(m.cpT)
	for _, s := range m.Seasonalities {
		w += 2 * s.Order
	}
	return w
}

// features builds the design row: intercept, slope, one hinge per changepoint,
// then sin/cos pairs for every seasonality.
func (m *Model) features(ts time.Time) []float64 {
	t := m.scaledTime(ts)
	row := make([]float64, 0, m.width())
	row = append(row, 1, t)
	for _, c := range m.cpT {
		row = append(row, math.Max(0, t-c))
	}

	days := ts.Sub(epoch).Hours() / 24
	for _, s := range m.Seasonalities {
		for k := 1; k <= s.Order; k++ {
			arg := 2 * math.Pi * float64(k) * days / s.Period
			row = append(row, math.Sin(arg), math.Cos(arg))
		}
	}
	return row
}

// penalties returns the ridge penalty of each column for a noise level sigma.
func (m *Model) penalties(sigma float64) []float64 {
	s2 := sigma * sigma
	pen := make([]float64, 0, m.width())
	trend := s2 / (m.Config.TrendPriorScale * m.Config.TrendPriorScale)
	pen = append(pen, trend, trend)
	for range m.cpT {
		pen = append(pen, s2/(m.Config.ChangepointPriorScale*m.Config.ChangepointPriorScale))
	}
	for _, s := range m.Seasonalities {
		for k := 0; k < 2*s.Order; k++ {
			pen = append(pen, s2/(m.Config.SeasonalityPriorScale*m.Config.SeasonalityPriorScale))
		}
	}
	return pen
}

// solve minimizes |y - X b|^2 + sum(penalty_j * b_j^2).
func (m *Model) solve(X *mat.Dense, y *mat.VecDense, sigma float64) (*mat.VecDense, error) {
	_, p := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	pen := m.penalties(sigma)
	a := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := xtx.At(i, j)
			if i == j {
				v += pen[i]
			}
			a.SetSym(i, j, v)
		}
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, errors.New("normal equations are not positive definite")
	}

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fmt.Errorf("solving normal equations: %w", err)
	}
	for i := 0; i < beta.Len(); i++ {
		if v := beta.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New("fit produced non-finite coefficients")
		}
	}
	return &beta, nil
}

func residualsOf(X *mat.Dense, beta *mat.VecDense, y []float64) []float64 {
	var fitted mat.VecDense
	fitted.MulVec(X, beta)

	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] - fitted.AtVec(i)
	}
	return out
}

// unpack splits the coefficient vector into trend and seasonal parts.
func (m *Model) unpack(beta *mat.VecDense) {
	m.Intercept = beta.AtVec(0)
	m.Slope = beta.AtVec(1)

	idx := 2
	m.Deltas = make([]float64, len(m.cpT))
	for j := range m.cpT {
		m.Deltas[j] = beta.AtVec(idx)
		idx++
	}

	m.seasonBeta = make([][]float64, len(m.Seasonalities))
	for s, season := range m.Seasonalities {
		m.seasonBeta[s] = make([]float64, 2*season.Order)
		for k := range m.seasonBeta[s] {
			m.seasonBeta[s][k] = beta.AtVec(idx)
			idx++
		}
	}
}

// MakeFuture returns the distinct history timestamps followed by periods
// consecutive days after the last observation.
func (m *Model) MakeFuture(periods int) ([]time.Time, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before making future dates")
	}
	if periods < 0 {
		return nil, errors.New("periods must not be negative")
	}

	dates := make([]time.Time, 0, m.history.Len()+periods)
	for i, ts := range m.history.Timestamps {
		if i > 0 && ts.Equal(dates[len(dates)-1]) {
			continue
		}
		dates = append(dates, ts)
	}
	last := m.history.Last()
	for h := 1; h <= periods; h++ {
		dates = append(dates, last.AddDate(0, 0, h))
	}
	return dates, nil
}

// Point is a prediction with its band and additive components, in units sold.
type Point struct {
	Timestamp time.Time
	Yhat      float64
	Lower     float64
	Upper     float64
	Trend     float64
	Seasonal  map[string]float64 // Keyed by seasonality name
}

// Predict evaluates the model at the given timestamps.
//
// Inside the history the band reflects residual noise only. Beyond it the band
// also includes trend uncertainty: future changepoints arrive at the historical
// rate with Laplace-distributed slope changes of the fitted mean size.
func (m *Model) Predict(timestamps []time.Time) ([]Point, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before prediction")
	}

	rate := float64(len(m.cpT))
	laplace := 0.0
	for _, d := range m.Deltas {
		laplace += math.Abs(d)
	}
	if len(m.Deltas) > 0 {
		laplace /= float64(len(m.Deltas))
	}

	points := make([]Point, len(timestamps))
	for i, ts := range timestamps {
		t := m.scaledTime(ts)

		trend := m.Intercept + m.Slope*t
		for j, c := range m.cpT {
			trend += m.Deltas[j] * math.Max(0, t-c)
		}

		days := ts.Sub(epoch).Hours() / 24
		seasonal := make(map[string]float64, len(m.Seasonalities))
		total := trend
		for s, season := range m.Seasonalities {
			v := 0.0
			for k := 1; k <= season.Order; k++ {
				arg := 2 * math.Pi * float64(k) * days / season.Period
				v += m.seasonBeta[s][2*(k-1)]*math.Sin(arg) + m.seasonBeta[s][2*(k-1)+1]*math.Cos(arg)
			}
			seasonal[season.Name] = v * m.yScale
			total += v
		}

		variance := m.Sigma * m.Sigma
		if t > 1 {
			ahead := t - 1
			variance += 2 * rate * laplace * laplace * ahead * ahead * ahead / 3
		}
		half := m.z * math.Sqrt(variance)

		points[i] = Point{
			Timestamp: ts,
			Yhat:      total * m.yScale,
			Lower:     (total - half) * m.yScale,
			Upper:     (total + half) * m.yScale,
			Trend:     trend * m.yScale,
			Seasonal:  seasonal,
		}
	}
	return points, nil
}

// Components is the additive decomposition of a prediction range.
type Components struct {
	Timestamps []time.Time
	Trend      []float64
	Names      []string             // Seasonality names in model order
	Seasonal   map[string][]float64 // Per seasonality
	Additive   []float64            // Sum of all seasonalities
}

// Components decomposes the model's predictions at the given timestamps.
func (m *Model) Components(timestamps []time.Time) (*Components, error) {
	points, err := m.Predict(timestamps)
	if err != nil {
		return nil, err
	}

	c := &Components{
		Timestamps: make([]time.Time, len(points)),
		Trend:      make([]float64, len(points)),
		Seasonal:   make(map[string][]float64, len(m.Seasonalities)),
		Additive:   make([]float64, len(points)),
	}
	for _, s := range m.Seasonalities {
		c.Names = append(c.Names, s.Name)
		c.Seasonal[s.Name] = make([]float64, len(points))
	}
	for i, p := range points {
		c.Timestamps[i] = p.Timestamp
		c.Trend[i] = p.Trend
		for name, v := range p.Seasonal {
			c.Seasonal[name][i] = v
			c.Additive[i] += v
		}
	}
	return c, nil
}

// Residuals returns the in-sample residuals in units sold.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// Summary describes a fitted seasonal model.
type Summary struct {
	Seasonalities []Seasonality
	Changepoints  int
	ResidualStd   float64 // Units sold
	RMSE          float64
	MAE           float64
	NObs          int
	LjungBox      *stats.LjungBoxResult
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}
	return &Summary{
		Seasonalities: m.Seasonalities,
		Changepoints:  len(m.cpT),
		ResidualStd:   stats.Spread(m.residuals),
		RMSE:          stats.RMSE(m.residuals),
		MAE:           stats.MAE(m.residuals),
		NObs:          len(m.residuals),
		LjungBox:      stats.LjungBox(m.residuals, 10, 2),
	}
}
