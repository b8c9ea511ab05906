package repository

import (
	"context"

	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
)

// PriceRepository fetches raw daily price history for a set of tickers.
type PriceRepository interface {
	GetDailyPrices(ctx context.Context, tickers []string, priceRange, interval string) (*entity.RawPriceTable, error)
}

// NewsRepository searches a news provider and returns raw article records in
// provider order.
type NewsRepository interface {
	Search(ctx context.Context, query string, limit int) ([]dto.RawNewsArticle, error)
}

// TextClassifier classifies one text into a sentiment label with a confidence
// score. Implementations are constructed once per process and are safe for
// concurrent use.
type TextClassifier interface {
	Classify(ctx context.Context, text string) (*dto.SentimentPrediction, error)
}
