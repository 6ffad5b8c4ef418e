package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/auspex/internal/models"
)

func TestScorerBoundsAndPolarity(t *testing.T) {
	scorer := NewScorer()

	positive := scorer.Score("Shares surge after record profit", "Investors celebrate an excellent quarter")
	negative := scorer.Score("Stock crashes on fraud investigation", "Analysts warn of terrible losses ahead")
	neutral := scorer.Score("Company schedules annual meeting", "")

	for _, score := range []float64{positive, negative, neutral} {
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}

	assert.Greater(t, positive, 0.0)
	assert.Less(t, negative, 0.0)
}

func TestScorerDeterministic(t *testing.T) {
	scorer := NewScorer()

	first := scorer.Score("Upbeat outlook lifts shares", "Strong growth expected")
	second := scorer.Score("Upbeat outlook lifts shares", "Strong growth expected")

	require.Equal(t, first, second)
}

func TestScorerEmptyDescription(t *testing.T) {
	scorer := NewScorer()

	// Missing description joins as "title. " and must still score.
	score := scorer.Score("Great results", "")
	assert.Greater(t, score, 0.0)
}

func TestMeanScoreEmpty(t *testing.T) {
	assert.Equal(t, 0.0, MeanScore(nil))
	assert.Equal(t, 0.0, MeanScore([]models.Article{}))
}

func TestMeanScore(t *testing.T) {
	articles := []models.Article{
		{Sentiment: 0.5},
		{Sentiment: -0.1},
		{Sentiment: 0.2},
	}

	assert.InDelta(t, 0.2, MeanScore(articles), 1e-12)
}
