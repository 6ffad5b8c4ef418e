package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/auspex/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the headline provider API.
	DefaultBaseURL = "https://newsapi.org"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 10 * time.Second
)

// Client is a headline-search API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new headline provider client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// searchResponse is the provider's wire format. On rejection the provider
// returns status "error" with a machine-readable code.
type searchResponse struct {
	Status       string        `json:"status"`
	Code         string        `json:"code"`
	Message      string        `json:"message"`
	TotalResults int           `json:"totalResults"`
	Articles     []wireArticle `json:"articles"`
}

type wireArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Everything searches headlines matching the query. Articles come back
// unscored; sentiment is attached by the fetcher.
func (c *Client) Everything(ctx context.Context, q Query) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", q.Term)
	params.Set("pageSize", fmt.Sprintf("%d", q.PageSize))
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if !q.From.IsZero() {
		params.Set("from", q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.Format("2006-01-02"))
	}

	reqURL := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	if c.logger != nil {
		c.logger.Debug().
			Str("term", q.Term).
			Bool("windowed", q.Windowed()).
			Msg("News API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || body.Status == "error" {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       body.Code,
			Message:    body.Message,
		}
	}

	articles := make([]models.Article, 0, len(body.Articles))
	for _, art := range body.Articles {
		article := models.Article{
			Title:       art.Title,
			Description: art.Description,
			URL:         art.URL,
		}
		if t, err := time.Parse(time.RFC3339, art.PublishedAt); err == nil {
			article.PublishedAt = t
		}
		articles = append(articles, article)
	}

	return articles, nil
}
