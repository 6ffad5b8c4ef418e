package forecast

import "github.com/ternarybob/auspex/internal/timeseries"

// Adjust scales every forecast point by (1 + sentiment) and returns a new
// series; the input is left untouched. Sentiment is expected in [-1, 1] but
// is deliberately not clamped: values below -1 invert the sign, which is an
// accepted consequence of the linear model.
func Adjust(series timeseries.Series, sentiment float64) timeseries.Series {
	adjusted := make(timeseries.Series, len(series))
	for i, obs := range series {
		adjusted[i] = timeseries.Observation{
			Time:  obs.Time,
			Value: obs.Value * (1 + sentiment),
		}
	}
	return adjusted
}
