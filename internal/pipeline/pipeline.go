// Package pipeline orchestrates per-ticker processing: price history to
// monthly series to seasonal forecast, headline sentiment, adjustment, and
// report persistence. Tickers are independent; one ticker's failure is
// logged and the batch continues.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/forecast"
	"github.com/ternarybob/auspex/internal/models"
	"github.com/ternarybob/auspex/internal/news"
	"github.com/ternarybob/auspex/internal/timeseries"
)

// PriceSource retrieves raw daily closing prices for a symbol.
type PriceSource interface {
	DailyCloses(ctx context.Context, symbol string, from, to time.Time) (timeseries.Series, error)
}

// HeadlineFetcher retrieves scored headlines for a ticker. Never fails; an
// unavailable feed degrades to neutral sentiment.
type HeadlineFetcher interface {
	Fetch(ctx context.Context, ticker string) news.Result
}

// ReportStore persists finished forecast reports.
type ReportStore interface {
	Save(ctx context.Context, report *models.ForecastReport) error
}

// Pipeline runs the forecast-with-sentiment flow for a batch of tickers.
type Pipeline struct {
	prices  PriceSource
	fetcher HeadlineFetcher
	fitter  forecast.Fitter
	reports ReportStore
	logger  arbor.ILogger

	horizon int
	period  int

	// limiter paces external news fetches: burst 1, so the first ticker
	// proceeds immediately and each subsequent fetch waits out the spacing.
	limiter *rate.Limiter
}

// New creates a pipeline. spacing is the polite pause between consecutive
// news fetches; zero disables pacing.
func New(prices PriceSource, fetcher HeadlineFetcher, fitter forecast.Fitter, reports ReportStore, cfg common.ForecastConfig, spacing time.Duration, logger arbor.ILogger) *Pipeline {
	limit := rate.Inf
	if spacing > 0 {
		limit = rate.Every(spacing)
	}
	return &Pipeline{
		prices:  prices,
		fetcher: fetcher,
		fitter:  fitter,
		reports: reports,
		logger:  logger,
		horizon: cfg.Horizon,
		period:  cfg.SeasonalPeriod,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// ProcessTicker runs the full flow for one ticker and returns the persisted
// report. Errors here are terminal for the ticker but not for the batch.
func (p *Pipeline) ProcessTicker(ctx context.Context, ticker string, from, to time.Time) (*models.ForecastReport, error) {
	raw, err := p.prices.DailyCloses(ctx, ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch price history for %s: %w", ticker, err)
	}

	monthly, err := timeseries.ResampleMonthly(raw)
	if err != nil {
		return nil, fmt.Errorf("resample price history for %s: %w", ticker, err)
	}

	model, err := p.fitter.Fit(monthly, p.period)
	if err != nil {
		return nil, fmt.Errorf("fit forecast model for %s: %w", ticker, err)
	}
	rawForecast := model.Forecast(p.horizon)

	// The forecast and news legs have no ordering dependency; they run
	// sequentially here and both complete before the adjustment.
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for fetch spacing: %w", err)
	}
	headlines := p.fetcher.Fetch(ctx, ticker)

	adjusted := forecast.Adjust(rawForecast, headlines.MeanSentiment)

	report := &models.ForecastReport{
		Ticker:        ticker,
		GeneratedAt:   time.Now().UTC(),
		MeanSentiment: headlines.MeanSentiment,
		Historical:    monthly,
		Forecast:      rawForecast,
		Adjusted:      adjusted,
		Articles:      headlines.Articles,
	}
	if err := p.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("save report for %s: %w", ticker, err)
	}

	p.logger.Info().
		Str("ticker", ticker).
		Int("months", len(monthly)).
		Int("horizon", p.horizon).
		Float64("sentiment", headlines.MeanSentiment).
		Int("articles", len(headlines.Articles)).
		Msg("Ticker processed")

	return report, nil
}

// Run processes every ticker in order. Per-ticker failures are logged and
// skipped; the batch never aborts. Returns the processed and failed counts.
func (p *Pipeline) Run(ctx context.Context, tickers []string, from, to time.Time) (processed, failed int) {
	for _, ticker := range tickers {
		if _, err := p.ProcessTicker(ctx, ticker, from, to); err != nil {
			p.logger.Error().
				Str("ticker", ticker).
				Err(err).
				Msg("Ticker failed, continuing batch")
			failed++
			continue
		}
		processed++
	}
	return processed, failed
}
