package models

import (
	"time"

	"github.com/ternarybob/auspex/internal/timeseries"
)

// ForecastReport is the persisted output of one ticker run: the historical
// monthly series, the raw and sentiment-adjusted forecasts, and the scored
// articles behind the adjustment.
type ForecastReport struct {
	ID            string            `json:"id" badgerhold:"key"`
	Ticker        string            `json:"ticker" badgerhold:"index"`
	GeneratedAt   time.Time         `json:"generated_at"`
	MeanSentiment float64           `json:"mean_sentiment"`
	Historical    timeseries.Series `json:"historical"`
	Forecast      timeseries.Series `json:"forecast"`
	Adjusted      timeseries.Series `json:"adjusted"`
	Articles      []Article         `json:"articles"`
}
