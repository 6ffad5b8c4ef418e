package models

import "time"

// Article is a single scored news headline for a ticker.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Sentiment   float64   `json:"sentiment"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}
