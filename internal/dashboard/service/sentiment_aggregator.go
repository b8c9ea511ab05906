package service

import (
	"golang-stock-sentinel/internal/entity"
)

// SummarizeSentiment counts label occurrences across a labeled news table.
// Only labels that occur at least once appear in the result; an empty input
// yields an empty map. The reduction is order-independent.
func SummarizeSentiment(articles []entity.LabeledArticle) entity.SentimentSummary {
	summary := make(entity.SentimentSummary)
	for _, article := range articles {
		summary[article.Sentiment]++
	}
	return summary
}
