package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/forecast"
	"github.com/ternarybob/auspex/internal/marketdata"
	"github.com/ternarybob/auspex/internal/news"
	"github.com/ternarybob/auspex/internal/pipeline"
	"github.com/ternarybob/auspex/internal/sentiment"
	"github.com/ternarybob/auspex/internal/storage/badger"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths
	tickersFlag  = flag.String("tickers", "", "Comma-separated tickers, e.g. GME,AAPL,MSFT")
	tickersFlagT = flag.String("t", "", "Comma-separated tickers (shorthand)")
	fromFlag     = flag.String("from", "", "History start date, YYYY-MM-DD")
	toFlag       = flag.String("to", "", "History end date, YYYY-MM-DD (default: today)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Auspex version %s\n", common.GetVersion())
		os.Exit(0)
	}

	rawTickers := *tickersFlag
	if rawTickers == "" {
		rawTickers = *tickersFlagT
	}
	tickers := common.ParseTickers(rawTickers)
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no tickers provided (use -tickers GME,AAPL)")
		os.Exit(1)
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("auspex.toml"); err == nil {
			configFiles = append(configFiles, "auspex.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	from, to, err := parseDateRange(*fromFlag, *toFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid date range")
	}

	db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer db.Close()

	p := buildPipeline(db)

	run := func() {
		processed, failed := p.Run(context.Background(), tickers, from, to)
		logger.Info().
			Int("processed", processed).
			Int("failed", failed).
			Msg("Batch complete")
	}

	run()

	if config.Schedule == "" {
		return
	}

	// Scheduled mode: re-run the batch on the configured cron expression
	// until interrupted.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(config.Schedule, run); err != nil {
		logger.Fatal().Err(err).Str("schedule", config.Schedule).Msg("Invalid schedule")
	}
	scheduler.Start()
	logger.Info().Str("schedule", config.Schedule).Msg("Scheduler started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("Shutting down")

	ctx := scheduler.Stop()
	<-ctx.Done()
}

// buildPipeline wires the clients, scorer, fetcher and storage together.
func buildPipeline(db *badger.BadgerDB) *pipeline.Pipeline {
	prices := marketdata.NewClient(config.Market.APIKey,
		marketdata.WithBaseURL(config.Market.BaseURL),
		marketdata.WithHTTPClient(newHTTPClient(config.Market.RequestTimeout)),
		marketdata.WithRateLimit(config.Market.RateLimit),
		marketdata.WithLogger(logger),
	)

	headlines := news.NewClient(config.News.APIKey,
		news.WithBaseURL(config.News.BaseURL),
		news.WithHTTPClient(newHTTPClient(config.News.RequestTimeout)),
		news.WithLogger(logger),
	)

	fetcher := news.NewFetcher(headlines, sentiment.NewScorer(), config.News,
		news.WithFetcherLogger(logger),
	)

	reports := badger.NewReportStorage(db, logger)

	return pipeline.New(prices, fetcher, forecast.HoltWinters{}, reports,
		config.Forecast, config.Batch.FetchSpacing, logger)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("missing -from date")
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse -from: %w", err)
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse -to: %w", err)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("-to must not be before -from")
	}
	return from, to, nil
}
