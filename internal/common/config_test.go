package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFilesDefaults(t *testing.T) {
	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.News.PageSize)
	assert.Equal(t, 3, cfg.News.MaxRetries)
	assert.Equal(t, 30, cfg.News.WindowDays)
	assert.Equal(t, 12, cfg.Forecast.Horizon)
	assert.Equal(t, 12, cfg.Forecast.SeasonalPeriod)
	assert.Equal(t, 1*time.Second, cfg.Batch.FetchSpacing)
	assert.Equal(t, 10*time.Second, cfg.News.RequestTimeout)
}

func TestLoadFromFilesOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auspex.toml")
	content := `
[news]
page_size = 10
max_retries = 5

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.News.PageSize)
	assert.Equal(t, 5, cfg.News.MaxRetries)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 12, cfg.Forecast.Horizon)
}

func TestLoadFromFilesEnvOverrides(t *testing.T) {
	t.Setenv("AUSPEX_NEWS_API_KEY", "test-key")
	t.Setenv("AUSPEX_NEWS_MAX_RETRIES", "7")
	t.Setenv("AUSPEX_LOG_LEVEL", "warn")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.News.APIKey)
	assert.Equal(t, 7, cfg.News.MaxRetries)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestConfigValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.News.PageSize = 0

	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Logging.Level = "verbose"

	assert.Error(t, cfg.Validate())

	assert.NoError(t, NewDefaultConfig().Validate())
}
