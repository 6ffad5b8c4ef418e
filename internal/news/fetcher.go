package news

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/models"
	"github.com/ternarybob/auspex/internal/sentiment"
)

// Provider executes one headline search. *Client implements it; tests inject
// a fake.
type Provider interface {
	Everything(ctx context.Context, q Query) ([]models.Article, error)
}

// Scorer scores one article's text fragment.
type Scorer interface {
	Score(title, description string) float64
}

// fetchState is one state of the retry/degrade machine scoped to a single
// logical fetch.
type fetchState int

const (
	stateAttempting fetchState = iota
	stateBackingOff
	stateDegrading
	stateSucceeded
	stateExhausted
)

// attemptOutcome classifies the result of one provider call for the
// transition function.
type attemptOutcome int

const (
	outcomeArticles attemptOutcome = iota
	outcomeEmpty
	outcomeWindowRejected
	outcomeTransient
)

// retryState is mutable state exclusively owned by one in-flight fetch.
type retryState struct {
	attempt  int  // completed failure retries
	windowed bool // date window still applied
}

// transition applies one attempt outcome and returns the next state plus the
// backoff delay to honor when entering stateBackingOff.
//
// Dropping the date window is a parameter change, not a failure: it re-enters
// stateAttempting without consuming the retry budget or sleeping. Once the
// window is gone, an empty result counts against the budget like any other
// failure (matching the upstream behavior this replaces; see DESIGN.md).
func transition(outcome attemptOutcome, r *retryState, maxRetries int) (fetchState, time.Duration) {
	switch outcome {
	case outcomeArticles:
		return stateSucceeded, 0

	case outcomeWindowRejected, outcomeEmpty:
		if r.windowed {
			r.windowed = false
			return stateDegrading, 0
		}
	}

	if r.attempt < maxRetries-1 {
		r.attempt++
		// Exponential, uncapped, no jitter: 2s, 4s, 8s, ...
		return stateBackingOff, time.Duration(1<<uint(r.attempt)) * time.Second
	}
	return stateExhausted, 0
}

// classify maps a provider call result onto an attempt outcome.
func classify(articles []models.Article, err error) attemptOutcome {
	switch {
	case err == nil && len(articles) > 0:
		return outcomeArticles
	case err == nil:
		return outcomeEmpty
	case IsWindowTooOld(err):
		return outcomeWindowRejected
	default:
		return outcomeTransient
	}
}

// Result is the recovered outcome of one fetch: the scored articles and their
// mean sentiment. An exhausted fetch yields an empty list and neutral 0.0.
type Result struct {
	Articles      []models.Article
	MeanSentiment float64
}

// Fetcher retrieves headlines for a ticker, tolerating transient provider
// errors, rate limits and plan restrictions on the date window. It never
// fails: a missing sentiment signal degrades to neutral.
type Fetcher struct {
	provider Provider
	scorer   Scorer
	names    common.NameTable
	logger   arbor.ILogger

	maxRetries int
	pageSize   int
	windowDays int
	language   string
	sortBy     string

	sleep func(time.Duration)
	now   func() time.Time
}

// FetcherOption configures the Fetcher.
type FetcherOption func(*Fetcher)

// WithNameTable sets a custom ticker-to-company table.
func WithNameTable(names common.NameTable) FetcherOption {
	return func(f *Fetcher) {
		f.names = names
	}
}

// WithFetcherLogger sets a logger.
func WithFetcherLogger(logger arbor.ILogger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithSleep replaces the backoff sleep, letting tests observe delays without
// waiting for them.
func WithSleep(sleep func(time.Duration)) FetcherOption {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

// WithClock replaces the wall clock used to compute the recency window.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) {
		f.now = now
	}
}

// NewFetcher creates a fetcher over the given provider and scorer.
func NewFetcher(provider Provider, scorer Scorer, cfg common.NewsConfig, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		provider:   provider,
		scorer:     scorer,
		names:      common.DefaultNameTable(),
		logger:     common.GetLogger(),
		maxRetries: cfg.MaxRetries,
		pageSize:   cfg.PageSize,
		windowDays: cfg.WindowDays,
		language:   cfg.Language,
		sortBy:     cfg.SortBy,
		sleep:      time.Sleep,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves up to pageSize headlines for the ticker, scores each and
// returns the articles with their mean sentiment. Mapped tickers are searched
// by company name; unmapped tickers are searched verbatim.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) Result {
	term := f.names.Resolve(ticker)

	state := stateAttempting
	r := &retryState{windowed: true}
	var (
		articles []models.Article
		delay    time.Duration
	)

	for {
		switch state {
		case stateAttempting:
			var err error
			articles, err = f.provider.Everything(ctx, f.buildQuery(term, r.windowed))
			outcome := classify(articles, err)
			if outcome == outcomeTransient {
				f.logger.Warn().
					Str("ticker", ticker).
					Int("attempt", r.attempt+1).
					Err(err).
					Msg("Headline fetch attempt failed")
			}
			state, delay = transition(outcome, r, f.maxRetries)

		case stateBackingOff:
			f.logger.Debug().
				Str("ticker", ticker).
				Dur("delay", delay).
				Msg("Backing off before retry")
			f.sleep(delay)
			state = stateAttempting

		case stateDegrading:
			f.logger.Debug().
				Str("ticker", ticker).
				Msg("Dropping date window, falling back to unfiltered search")
			state = stateAttempting

		case stateSucceeded:
			for i := range articles {
				articles[i].Sentiment = f.scorer.Score(articles[i].Title, articles[i].Description)
			}
			mean := sentiment.MeanScore(articles)
			f.logger.Info().
				Str("ticker", ticker).
				Str("term", term).
				Int("articles", len(articles)).
				Float64("sentiment", mean).
				Msg("Headlines fetched")
			return Result{Articles: articles, MeanSentiment: mean}

		case stateExhausted:
			f.logger.Warn().
				Str("ticker", ticker).
				Int("max_retries", f.maxRetries).
				Msg("Headline fetch exhausted, using neutral sentiment")
			return Result{Articles: []models.Article{}, MeanSentiment: 0.0}
		}
	}
}

// buildQuery assembles the provider query; the date window covers the most
// recent windowDays, computed at call time.
func (f *Fetcher) buildQuery(term string, windowed bool) Query {
	q := Query{
		Term:     term,
		Language: f.language,
		SortBy:   f.sortBy,
		PageSize: f.pageSize,
	}
	if windowed {
		now := f.now().UTC()
		q.From = now.AddDate(0, 0, -f.windowDays)
		q.To = now
	}
	return q
}
