package service

import (
	"testing"

	"golang-stock-sentinel/internal/entity"

	"github.com/stretchr/testify/assert"
)

func labeledWith(labels ...entity.SentimentLabel) []entity.LabeledArticle {
	articles := make([]entity.LabeledArticle, 0, len(labels))
	for _, l := range labels {
		articles = append(articles, entity.LabeledArticle{Sentiment: l})
	}
	return articles
}

func TestSummarizeSentiment(t *testing.T) {
	tests := []struct {
		name     string
		labels   []entity.SentimentLabel
		expected entity.SentimentSummary
	}{
		{
			name:     "mixed labels",
			labels:   []entity.SentimentLabel{entity.SentimentPositive, entity.SentimentNeutral, entity.SentimentNegative},
			expected: entity.SentimentSummary{entity.SentimentPositive: 1, entity.SentimentNeutral: 1, entity.SentimentNegative: 1},
		},
		{
			name:     "only occurring labels appear",
			labels:   []entity.SentimentLabel{entity.SentimentPositive, entity.SentimentPositive},
			expected: entity.SentimentSummary{entity.SentimentPositive: 2},
		},
		{
			name:     "empty input yields empty mapping",
			labels:   nil,
			expected: entity.SentimentSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeSentiment(labeledWith(tt.labels...))
			assert.Equal(t, tt.expected, summary)
			assert.Equal(t, len(tt.labels), summary.Total(), "counts must sum to row count")
			for label := range summary {
				assert.True(t, label.IsValid())
			}
		})
	}
}

func TestSummarizeSentiment_OrderIndependent(t *testing.T) {
	forward := SummarizeSentiment(labeledWith(entity.SentimentPositive, entity.SentimentNegative, entity.SentimentNeutral))
	reversed := SummarizeSentiment(labeledWith(entity.SentimentNeutral, entity.SentimentNegative, entity.SentimentPositive))
	assert.Equal(t, forward, reversed)
}
