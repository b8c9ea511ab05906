package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
	"golang-stock-sentinel/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	classify func(ctx context.Context, text string) (*dto.SentimentPrediction, error)
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*dto.SentimentPrediction, error) {
	return f.classify(ctx, text)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func keywordClassifier() *fakeClassifier {
	return &fakeClassifier{classify: func(_ context.Context, text string) (*dto.SentimentPrediction, error) {
		switch {
		case strings.Contains(text, "soars"):
			return &dto.SentimentPrediction{Label: entity.SentimentPositive, Score: 0.9}, nil
		case strings.Contains(text, "plummets"):
			return &dto.SentimentPrediction{Label: entity.SentimentNegative, Score: 0.9}, nil
		default:
			return &dto.SentimentPrediction{Label: entity.SentimentNeutral, Score: 0.5}, nil
		}
	}}
}

func TestLabel_AssignsLabelsInInputOrder(t *testing.T) {
	labeler := NewSentimentLabeler(keywordClassifier(), testLogger(t), 4)

	articles := []entity.NewsArticle{
		{Title: strPtr("Stock soars"), Source: "a"},
		{Title: nil, Source: "b"},
		{Title: strPtr("Stock plummets"), Source: "c"},
	}

	labeled := labeler.Label(context.Background(), articles)
	require.Len(t, labeled, 3)

	assert.Equal(t, entity.SentimentPositive, labeled[0].Sentiment)
	assert.Equal(t, entity.SentimentNeutral, labeled[1].Sentiment)
	assert.Equal(t, entity.SentimentNegative, labeled[2].Sentiment)

	// The original article data rides along unchanged, in order.
	assert.Equal(t, "a", labeled[0].Source)
	assert.Equal(t, "b", labeled[1].Source)
	assert.Equal(t, "c", labeled[2].Source)
}

func TestLabel_MissingTitleSkipsClassifier(t *testing.T) {
	called := false
	classifier := &fakeClassifier{classify: func(_ context.Context, _ string) (*dto.SentimentPrediction, error) {
		called = true
		return &dto.SentimentPrediction{Label: entity.SentimentPositive, Score: 1}, nil
	}}
	labeler := NewSentimentLabeler(classifier, testLogger(t), 1)

	labeled := labeler.Label(context.Background(), []entity.NewsArticle{{Title: nil}})
	require.Len(t, labeled, 1)
	assert.Equal(t, entity.SentimentNeutral, labeled[0].Sentiment)
	assert.False(t, called, "classifier must not run for a missing title")
}

func TestLabel_ClassifierErrorFallsBackToNeutral(t *testing.T) {
	classifier := &fakeClassifier{classify: func(_ context.Context, text string) (*dto.SentimentPrediction, error) {
		if strings.Contains(text, "bad") {
			return nil, errors.New("inference backend unavailable")
		}
		return &dto.SentimentPrediction{Label: entity.SentimentPositive, Score: 0.8}, nil
	}}
	labeler := NewSentimentLabeler(classifier, testLogger(t), 2)

	labeled := labeler.Label(context.Background(), []entity.NewsArticle{
		{Title: strPtr("good headline")},
		{Title: strPtr("bad headline")},
		{Title: strPtr("good again")},
	})
	require.Len(t, labeled, 3)

	assert.Equal(t, entity.SentimentPositive, labeled[0].Sentiment)
	assert.Equal(t, entity.SentimentNeutral, labeled[1].Sentiment, "row failure is isolated")
	assert.Equal(t, entity.SentimentPositive, labeled[2].Sentiment, "batch continues past a failed row")
}

func TestLabel_TruncatesLongTitles(t *testing.T) {
	var got string
	classifier := &fakeClassifier{classify: func(_ context.Context, text string) (*dto.SentimentPrediction, error) {
		got = text
		return &dto.SentimentPrediction{Label: entity.SentimentNeutral, Score: 0.5}, nil
	}}
	labeler := NewSentimentLabeler(classifier, testLogger(t), 1)

	long := strings.Repeat("x", 2000)
	labeler.Label(context.Background(), []entity.NewsArticle{{Title: &long}})

	assert.Len(t, got, classifierInputLimit)
}

func TestLabel_EmptyInput(t *testing.T) {
	labeler := NewSentimentLabeler(keywordClassifier(), testLogger(t), 1)
	labeled := labeler.Label(context.Background(), nil)
	assert.Len(t, labeled, 0)
}
