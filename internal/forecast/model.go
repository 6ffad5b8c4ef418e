// Package forecast fits additive Holt-Winters models to monthly price series
// and produces fixed-horizon, sentiment-adjustable forecasts.
package forecast

import (
	"fmt"

	"github.com/ternarybob/auspex/internal/timeseries"
)

// Fitter fits a seasonal smoothing model to a monthly series.
// The forecaster is abstracted behind this interface so the pipeline can be
// tested with a stub model.
type Fitter interface {
	Fit(series timeseries.Series, seasonalPeriod int) (Model, error)
}

// Model is a fitted state that can extrapolate beyond the observed series.
type Model interface {
	// Forecast returns exactly horizon future observations, one per month,
	// starting the month after the last observed month.
	Forecast(horizon int) timeseries.Series
}

// ModelFitError indicates the smoothing model could not be fit to the series.
type ModelFitError struct {
	Reason string
	Err    error
}

func (e *ModelFitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forecast: model fit failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("forecast: model fit failed: %s", e.Reason)
}

func (e *ModelFitError) Unwrap() error {
	return e.Err
}
