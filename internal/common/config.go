package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Schedule    string         `toml:"schedule"`    // Optional cron expression; empty = run once and exit
	Market      MarketConfig   `toml:"market"`
	News        NewsConfig     `toml:"news"`
	Forecast    ForecastConfig `toml:"forecast"`
	Batch       BatchConfig    `toml:"batch"`
	Storage     StorageConfig  `toml:"storage"`
	Logging     LoggingConfig  `toml:"logging"`
}

// MarketConfig contains settings for the price-history provider.
type MarketConfig struct {
	BaseURL        string        `toml:"base_url" validate:"required,url"`
	APIKey         string        `toml:"api_key"`
	RequestTimeout time.Duration `toml:"request_timeout"` // Connection-level timeout, not dynamically adjusted
	RateLimit      int           `toml:"rate_limit" validate:"min=1"` // Requests per second
}

// NewsConfig contains settings for the headline-search provider.
type NewsConfig struct {
	BaseURL        string        `toml:"base_url" validate:"required,url"`
	APIKey         string        `toml:"api_key"`
	PageSize       int           `toml:"page_size" validate:"min=1,max=100"` // Headlines fetched per ticker
	MaxRetries     int           `toml:"max_retries" validate:"min=1,max=10"`
	WindowDays     int           `toml:"window_days" validate:"min=1"` // Recency window for the first fetch attempt
	Language       string        `toml:"language"`
	SortBy         string        `toml:"sort_by" validate:"oneof=relevancy popularity publishedAt"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// ForecastConfig contains settings for the seasonal forecaster.
type ForecastConfig struct {
	Horizon        int `toml:"horizon" validate:"min=1"`         // Months to forecast ahead
	SeasonalPeriod int `toml:"seasonal_period" validate:"min=2"` // Steps per seasonal cycle
}

// BatchConfig contains settings for the per-ticker batch run.
type BatchConfig struct {
	FetchSpacing time.Duration `toml:"fetch_spacing"` // Polite pause before each news fetch except the first
}

// StorageConfig contains embedded storage settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                      // "stdout" (alias "console"), "file"
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are expected in auspex.toml; everything here is
// a working default.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Market: MarketConfig{
			BaseURL:        "https://eodhd.com/api",
			RequestTimeout: 10 * time.Second,
			RateLimit:      10,
		},
		News: NewsConfig{
			BaseURL:        "https://newsapi.org",
			PageSize:       5,
			MaxRetries:     3,
			WindowDays:     30,
			Language:       "en",
			SortBy:         "relevancy",
			RequestTimeout: 10 * time.Second,
		},
		Forecast: ForecastConfig{
			Horizon:        12,
			SeasonalPeriod: 12,
		},
		Batch: BatchConfig{
			FetchSpacing: 1 * time.Second,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2
// -> ... -> env. Later files override earlier files; environment variables
// override everything.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the configuration using go-playground/validator tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AUSPEX_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if key := os.Getenv("AUSPEX_MARKET_API_KEY"); key != "" {
		config.Market.APIKey = key
	}
	if key := os.Getenv("AUSPEX_NEWS_API_KEY"); key != "" {
		config.News.APIKey = key
	}
	if pageSize := os.Getenv("AUSPEX_NEWS_PAGE_SIZE"); pageSize != "" {
		if n, err := strconv.Atoi(pageSize); err == nil {
			config.News.PageSize = n
		}
	}
	if retries := os.Getenv("AUSPEX_NEWS_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			config.News.MaxRetries = n
		}
	}
	if path := os.Getenv("AUSPEX_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if level := os.Getenv("AUSPEX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if schedule := os.Getenv("AUSPEX_SCHEDULE"); schedule != "" {
		config.Schedule = schedule
	}
}
