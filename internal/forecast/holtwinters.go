package forecast

import (
	"math"
	"time"

	"github.com/ternarybob/auspex/internal/timeseries"
)

// HoltWinters is an additive-trend, additive-seasonal exponential smoothing
// fitter. The smoothing parameters alpha, beta and gamma are found by
// minimizing the one-step-ahead sum of squared errors with a Nelder-Mead
// simplex; the caller supplies no smoothing constants.
type HoltWinters struct{}

// Compile-time assertion
var _ Fitter = (*HoltWinters)(nil)

// hwState holds the smoothing recursion outcome for one parameter set.
type hwState struct {
	level  float64
	trend  float64
	season []float64
	sse    float64
}

// hwModel is a fitted Holt-Winters model.
type hwModel struct {
	level    float64
	trend    float64
	season   []float64
	period   int
	lastIdx  int
	lastTime time.Time
}

// Compile-time assertion
var _ Model = (*hwModel)(nil)

// Fit estimates level, trend and seasonal components for the series.
// Seasonal initialization needs two full cycles of history; shorter series
// fail identifiability and are surfaced as *ModelFitError rather than
// silently degrading.
func (HoltWinters) Fit(series timeseries.Series, seasonalPeriod int) (Model, error) {
	if seasonalPeriod < 2 {
		return nil, &ModelFitError{Reason: "seasonal period must be at least 2"}
	}
	if len(series) < 2*seasonalPeriod {
		return nil, &ModelFitError{Reason: "series shorter than two seasonal cycles"}
	}

	values := series.Values()
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ModelFitError{Reason: "series contains non-finite values"}
		}
	}

	objective := func(params []float64) float64 {
		alpha, beta, gamma := params[0], params[1], params[2]
		if alpha <= 0 || alpha >= 1 || beta < 0 || beta > 1 || gamma < 0 || gamma > 1 {
			return math.Inf(1)
		}
		return smooth(values, seasonalPeriod, alpha, beta, gamma).sse
	}

	params := nelderMead(objective, []float64{0.3, 0.1, 0.1})
	state := smooth(values, seasonalPeriod, params[0], params[1], params[2])
	if math.IsNaN(state.sse) || math.IsInf(state.sse, 0) {
		return nil, &ModelFitError{Reason: "optimizer produced a non-finite fit"}
	}

	last, _ := series.Last()
	return &hwModel{
		level:    state.level,
		trend:    state.trend,
		season:   state.season,
		period:   seasonalPeriod,
		lastIdx:  (len(values) - 1) % seasonalPeriod,
		lastTime: timeseries.MonthStart(last.Time),
	}, nil
}

// smooth runs the additive Holt-Winters recursion for one parameter set and
// returns the terminal components plus the one-step-ahead SSE.
func smooth(values []float64, period int, alpha, beta, gamma float64) hwState {
	// Initial components from the first two cycles: level is the first-cycle
	// mean, trend the per-step change between cycle means, seasonals the
	// detrended first-cycle deviations (deviation from the mean minus the
	// ramp the trend contributes within the cycle).
	var firstMean, secondMean float64
	for i := 0; i < period; i++ {
		firstMean += values[i]
		secondMean += values[period+i]
	}
	firstMean /= float64(period)
	secondMean /= float64(period)

	level := firstMean
	trend := (secondMean - firstMean) / float64(period)
	season := make([]float64, period)
	for i := 0; i < period; i++ {
		season[i] = values[i] - firstMean - (float64(i)-float64(period-1)/2)*trend
	}

	var sse float64
	for t, y := range values {
		idx := t % period
		fitted := level + trend + season[idx]
		residual := y - fitted
		sse += residual * residual

		newLevel := alpha*(y-season[idx]) + (1-alpha)*(level+trend)
		trend = beta*(newLevel-level) + (1-beta)*trend
		season[idx] = gamma*(y-newLevel) + (1-gamma)*season[idx]
		level = newLevel
	}

	return hwState{level: level, trend: trend, season: season, sse: sse}
}

// Forecast extrapolates: step h ahead is level + h*trend plus the seasonal
// component for the month (lastIdx + h) mod period.
func (m *hwModel) Forecast(horizon int) timeseries.Series {
	out := make(timeseries.Series, 0, horizon)
	for h := 1; h <= horizon; h++ {
		out = append(out, timeseries.Observation{
			Time:  m.lastTime.AddDate(0, h, 0),
			Value: m.level + float64(h)*m.trend + m.season[(m.lastIdx+h)%m.period],
		})
	}
	return out
}

// nelderMead minimizes fn over len(start) dimensions with a standard
// downhill-simplex search. Good enough for the three bounded smoothing
// parameters; the objective returns +Inf outside the feasible box.
func nelderMead(fn func([]float64) float64, start []float64) []float64 {
	const (
		reflect    = 1.0
		expand     = 2.0
		contract   = 0.5
		shrink     = 0.5
		iterations = 400
		step       = 0.1
	)

	n := len(start)
	simplex := make([][]float64, n+1)
	scores := make([]float64, n+1)
	for i := range simplex {
		point := append([]float64(nil), start...)
		if i > 0 {
			point[i-1] += step
		}
		simplex[i] = point
		scores[i] = fn(point)
	}

	order := func() {
		for i := 1; i < len(simplex); i++ {
			for j := i; j > 0 && scores[j] < scores[j-1]; j-- {
				scores[j], scores[j-1] = scores[j-1], scores[j]
				simplex[j], simplex[j-1] = simplex[j-1], simplex[j]
			}
		}
	}

	centroid := func() []float64 {
		c := make([]float64, n)
		for _, point := range simplex[:n] {
			for d := 0; d < n; d++ {
				c[d] += point[d] / float64(n)
			}
		}
		return c
	}

	combine := func(c, p []float64, coeff float64) []float64 {
		out := make([]float64, n)
		for d := 0; d < n; d++ {
			out[d] = c[d] + coeff*(c[d]-p[d])
		}
		return out
	}

	for iter := 0; iter < iterations; iter++ {
		order()
		c := centroid()
		worst := simplex[n]

		reflected := combine(c, worst, reflect)
		reflectedScore := fn(reflected)

		switch {
		case reflectedScore < scores[0]:
			expanded := combine(c, worst, expand)
			if expandedScore := fn(expanded); expandedScore < reflectedScore {
				simplex[n], scores[n] = expanded, expandedScore
			} else {
				simplex[n], scores[n] = reflected, reflectedScore
			}
		case reflectedScore < scores[n-1]:
			simplex[n], scores[n] = reflected, reflectedScore
		default:
			contracted := combine(c, worst, -contract)
			if contractedScore := fn(contracted); contractedScore < scores[n] {
				simplex[n], scores[n] = contracted, contractedScore
			} else {
				// Shrink everything toward the best vertex.
				for i := 1; i <= n; i++ {
					for d := 0; d < n; d++ {
						simplex[i][d] = simplex[0][d] + shrink*(simplex[i][d]-simplex[0][d])
					}
					scores[i] = fn(simplex[i])
				}
			}
		}
	}

	order()
	return simplex[0]
}
