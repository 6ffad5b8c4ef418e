// Package timeseries provides the observation series types shared by the
// market-data client and the forecaster, plus calendar-month resampling.
package timeseries

import (
	"errors"
	"time"
)

// ErrEmptyInput indicates a series with zero observations where at least one
// is required.
var ErrEmptyInput = errors.New("timeseries: empty input series")

// Observation is a single timestamped value.
type Observation struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is an ordered sequence of observations with strictly increasing
// timestamps. A monthly series carries one observation per calendar month,
// timestamped at the first day of the month (UTC).
type Series []Observation

// Values returns the observation values in order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, obs := range s {
		values[i] = obs.Value
	}
	return values
}

// Last returns the final observation. The second return is false for an
// empty series.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// MonthStart truncates a timestamp to the first day of its calendar month (UTC).
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
