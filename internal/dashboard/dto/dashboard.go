package dto

import (
	"time"

	"golang-stock-sentinel/internal/entity"
)

// PricePoint is one charted row of the flat price table.
type PricePoint struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}

// PriceChart is the flat price table projected for a line chart.
type PriceChart struct {
	Columns []string     `json:"columns"`
	Points  []PricePoint `json:"points"`
}

// NewsRow is the tabular projection of a labeled article.
type NewsRow struct {
	Title       string                `json:"title"`
	Source      string                `json:"source"`
	PublishedAt string                `json:"published_at"`
	Sentiment   entity.SentimentLabel `json:"sentiment"`
}

// TickerSentiment is the per-ticker news pipeline output.
type TickerSentiment struct {
	Ticker   string                        `json:"ticker"`
	Articles []NewsRow                     `json:"articles"`
	Summary  map[entity.SentimentLabel]int `json:"summary"`
	Warning  string                        `json:"warning,omitempty"`
}

// DashboardSnapshot is the full response for one dashboard request.
type DashboardSnapshot struct {
	Tickers      []string          `json:"tickers"`
	PriceChart   *PriceChart       `json:"price_chart,omitempty"`
	PriceWarning string            `json:"price_warning,omitempty"`
	Sentiment    []TickerSentiment `json:"sentiment"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// ErrorResponse is a generic API error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
