// Package sentiment scores headline text with a fixed VADER lexicon and
// aggregates per-article scores into a single mean value.
package sentiment

import (
	"github.com/jonreiter/govader"
)

// Scorer computes compound sentiment for a text fragment using the VADER
// rule-based lexicon. Deterministic for a given lexicon version and input;
// no learned state.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer creates a scorer with the built-in VADER lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound sentiment in [-1, 1] for an article title and
// description. The fragments are joined with a period-and-space separator;
// an absent description is treated as an empty string.
func (s *Scorer) Score(title, description string) float64 {
	return s.analyzer.PolarityScores(title + ". " + description).Compound
}
