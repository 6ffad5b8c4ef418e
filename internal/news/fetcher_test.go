package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/models"
)

// scriptedProvider replays a fixed sequence of responses and records the
// queries it was called with.
type scriptedProvider struct {
	responses []scriptedResponse
	queries   []Query
}

type scriptedResponse struct {
	articles []models.Article
	err      error
}

func (p *scriptedProvider) Everything(_ context.Context, q Query) ([]models.Article, error) {
	p.queries = append(p.queries, q)
	if len(p.responses) == 0 {
		return nil, errors.New("scripted provider ran out of responses")
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp.articles, resp.err
}

// fixedScorer returns the same score for every article.
type fixedScorer struct {
	score float64
}

func (s fixedScorer) Score(title, description string) float64 {
	return s.score
}

func testNewsConfig() common.NewsConfig {
	return common.NewsConfig{
		PageSize:   5,
		MaxRetries: 3,
		WindowDays: 30,
		Language:   "en",
		SortBy:     "relevancy",
	}
}

func newTestFetcher(p Provider, scorer Scorer, sleeps *[]time.Duration) *Fetcher {
	return NewFetcher(p, scorer, testNewsConfig(),
		WithSleep(func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		}),
		WithClock(func() time.Time {
			return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func windowRejection() error {
	return &APIError{
		StatusCode: 426,
		Code:       "parameterInvalid",
		Message:    "You are trying to request results too far in the past.",
	}
}

func TestFetchDegradeOnWindowRejection(t *testing.T) {
	articles := []models.Article{
		{Title: "one"}, {Title: "two"}, {Title: "three"},
	}
	provider := &scriptedProvider{responses: []scriptedResponse{
		{err: windowRejection()},
		{articles: articles},
	}}

	var sleeps []time.Duration
	fetcher := newTestFetcher(provider, fixedScorer{score: 0.5}, &sleeps)

	result := fetcher.Fetch(context.Background(), "AAPL")

	require.Len(t, result.Articles, 3)
	require.Len(t, provider.queries, 2)

	// First attempt carries the 30-day window, the degraded retry does not.
	assert.True(t, provider.queries[0].Windowed())
	assert.False(t, provider.queries[1].Windowed())

	// Degrading is a parameter change, not a backoff cycle.
	assert.Empty(t, sleeps)
	assert.Equal(t, 0.5, result.MeanSentiment)
}

func TestFetchDegradeOnEmptyWindowedResult(t *testing.T) {
	provider := &scriptedProvider{responses: []scriptedResponse{
		{articles: nil},
		{articles: []models.Article{{Title: "found"}}},
	}}

	var sleeps []time.Duration
	fetcher := newTestFetcher(provider, fixedScorer{score: 0.1}, &sleeps)

	result := fetcher.Fetch(context.Background(), "MSFT")

	require.Len(t, result.Articles, 1)
	require.Len(t, provider.queries, 2)
	assert.True(t, provider.queries[0].Windowed())
	assert.False(t, provider.queries[1].Windowed())
	assert.Empty(t, sleeps)
}

func TestFetchExhaustsOnPersistentTransportFailure(t *testing.T) {
	transportErr := errors.New("connection reset")
	provider := &scriptedProvider{responses: []scriptedResponse{
		{err: transportErr},
		{err: transportErr},
		{err: transportErr},
	}}

	var sleeps []time.Duration
	fetcher := newTestFetcher(provider, fixedScorer{score: 0.9}, &sleeps)

	result := fetcher.Fetch(context.Background(), "GME")

	// Recovered, never an error: empty list, neutral sentiment.
	assert.Empty(t, result.Articles)
	assert.Equal(t, 0.0, result.MeanSentiment)

	// max_retries=3: exactly two backoff delays, strictly increasing.
	require.Len(t, sleeps, 2)
	assert.Equal(t, 2*time.Second, sleeps[0])
	assert.Equal(t, 4*time.Second, sleeps[1])
	assert.Greater(t, sleeps[1], sleeps[0])

	assert.Len(t, provider.queries, 3)
}

func TestFetchEmptyAfterDegradeConsumesBudget(t *testing.T) {
	// One degrade pass plus three budgeted attempts, all empty.
	provider := &scriptedProvider{responses: []scriptedResponse{
		{articles: nil}, // windowed -> degrade
		{articles: nil}, // attempt 1
		{articles: nil}, // attempt 2
		{articles: nil}, // attempt 3 -> exhausted
	}}

	var sleeps []time.Duration
	fetcher := newTestFetcher(provider, fixedScorer{}, &sleeps)

	result := fetcher.Fetch(context.Background(), "NVDA")

	assert.Empty(t, result.Articles)
	assert.Equal(t, 0.0, result.MeanSentiment)
	assert.Len(t, provider.queries, 4)
	assert.Len(t, sleeps, 2)
}

func TestFetchSearchTermMapping(t *testing.T) {
	provider := &scriptedProvider{responses: []scriptedResponse{
		{articles: []models.Article{{Title: "x"}}},
		{articles: []models.Article{{Title: "y"}}},
	}}

	var sleeps []time.Duration
	fetcher := newTestFetcher(provider, fixedScorer{}, &sleeps)

	fetcher.Fetch(context.Background(), "AAPL")
	fetcher.Fetch(context.Background(), "ZZZT")

	require.Len(t, provider.queries, 2)
	assert.Equal(t, "Apple", provider.queries[0].Term)
	assert.Equal(t, "ZZZT", provider.queries[1].Term)
}

func TestFetchScoresAndAggregates(t *testing.T) {
	provider := &scriptedProvider{responses: []scriptedResponse{
		{articles: []models.Article{{Title: "a"}, {Title: "b"}}},
	}}

	var sleeps []time.Duration
	fetcher := newTestFetcher(provider, fixedScorer{score: -0.4}, &sleeps)

	result := fetcher.Fetch(context.Background(), "TSLA")

	require.Len(t, result.Articles, 2)
	for _, article := range result.Articles {
		assert.Equal(t, -0.4, article.Sentiment)
	}
	assert.InDelta(t, -0.4, result.MeanSentiment, 1e-12)
}

func TestFetchWindowCoversRecentDays(t *testing.T) {
	provider := &scriptedProvider{responses: []scriptedResponse{
		{articles: []models.Article{{Title: "x"}}},
	}}

	var sleeps []time.Duration
	fetcher := newTestFetcher(provider, fixedScorer{}, &sleeps)

	fetcher.Fetch(context.Background(), "KO")

	require.Len(t, provider.queries, 1)
	q := provider.queries[0]
	assert.Equal(t, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC), q.To)
	assert.Equal(t, time.Date(2025, time.May, 16, 12, 0, 0, 0, time.UTC), q.From)
}

func TestIsWindowTooOldClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"window rejection", windowRejection(), true},
		{"rate limit", &APIError{Code: "rateLimited", Message: "Too many requests"}, false},
		{"other parameterInvalid", &APIError{Code: "parameterInvalid", Message: "bad pageSize"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWindowTooOld(tt.err))
		})
	}
}
