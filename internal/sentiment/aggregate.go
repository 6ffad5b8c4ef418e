package sentiment

import "github.com/ternarybob/auspex/internal/models"

// MeanScore returns the arithmetic mean of the article sentiment scores, or
// exactly 0.0 (neutral) for an empty set. Never fails.
func MeanScore(articles []models.Article) float64 {
	if len(articles) == 0 {
		return 0.0
	}
	var sum float64
	for _, article := range articles {
		sum += article.Sentiment
	}
	return sum / float64(len(articles))
}
