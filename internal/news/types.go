// Package news provides a client for a NewsAPI-style headline provider and a
// resilient fetcher that turns the unreliable feed into a bounded sentiment
// signal for a ticker.
package news

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Query holds the search parameters for one provider request.
type Query struct {
	Term     string
	From     time.Time // zero = no date window
	To       time.Time
	Language string
	SortBy   string
	PageSize int
}

// Windowed reports whether the query restricts results to a date range.
func (q Query) Windowed() bool {
	return !q.From.IsZero() || !q.To.IsZero()
}

// APIError represents a structured rejection from the headline provider,
// carrying the machine-readable code alongside the human-readable message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("news API error: %s (code: %s, status: %d)", e.Message, e.Code, e.StatusCode)
}

// Recognized provider rejection codes. Anything outside this closed set is
// treated as a generic transient error.
const (
	codeParameterInvalid = "parameterInvalid"
	codeRateLimited      = "rateLimited"
)

// windowTooOldMarker is the fragment the provider includes in the
// parameterInvalid message when the requested window exceeds the plan's
// historical depth.
const windowTooOldMarker = "too far in the past"

// IsWindowTooOld reports whether err is the provider rejecting the requested
// date window as beyond the plan's reach. Classification is over the
// structured code plus the provider's documented message marker, not a
// free-form guess.
func IsWindowTooOld(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == codeParameterInvalid &&
		strings.Contains(strings.ToLower(apiErr.Message), windowTooOldMarker)
}

// IsRateLimited reports whether err is a provider rate-limit rejection.
// Rate limits are retried like any other transient error.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == codeRateLimited
}
