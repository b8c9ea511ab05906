package service

import (
	"context"
	"sync"

	"golang-stock-sentinel/internal/dashboard/repository"
	"golang-stock-sentinel/internal/entity"
	"golang-stock-sentinel/pkg/logger"
	"golang-stock-sentinel/pkg/utils"
)

// classifierInputLimit is the classifier's input bound in characters; longer
// titles are truncated before classification.
const classifierInputLimit = 512

// SentimentLabeler appends a sentiment label to each article of a news table.
// The classifier handle is injected and shared across all invocations.
type SentimentLabeler struct {
	classifier    repository.TextClassifier
	log           *logger.Logger
	maxConcurrent int
}

// NewSentimentLabeler creates a labeler classifying up to maxConcurrent
// titles in parallel.
func NewSentimentLabeler(classifier repository.TextClassifier, log *logger.Logger, maxConcurrent int) *SentimentLabeler {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &SentimentLabeler{
		classifier:    classifier,
		log:           log,
		maxConcurrent: maxConcurrent,
	}
}

// Label classifies every article title and returns one labeled article per
// input article, in input order. Rows are independent: a classification
// failure sets that row to NEUTRAL and never aborts the batch.
func (l *SentimentLabeler) Label(ctx context.Context, articles []entity.NewsArticle) []entity.LabeledArticle {
	labeled := make([]entity.LabeledArticle, len(articles))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, l.maxConcurrent)

	for i, article := range articles {
		i, article := i, article
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			labeled[i] = entity.LabeledArticle{
				NewsArticle: article,
				Sentiment:   l.labelOne(ctx, article),
			}
		})
	}
	wg.Wait()

	return labeled
}

// labelOne resolves the sentiment for a single article. The classifier error
// is collapsed to the NEUTRAL fallback here, at the row boundary, so recovery
// stays local and visible.
func (l *SentimentLabeler) labelOne(ctx context.Context, article entity.NewsArticle) entity.SentimentLabel {
	if article.Title == nil {
		return entity.SentimentNeutral
	}

	title := utils.TruncateRunes(*article.Title, classifierInputLimit)
	prediction, err := l.classifier.Classify(ctx, title)
	if err != nil {
		l.log.WarnContext(ctx, "Classification failed, falling back to neutral",
			logger.ErrorField(err),
			logger.StringField("title", title),
		)
		return entity.SentimentNeutral
	}

	return prediction.Label
}
