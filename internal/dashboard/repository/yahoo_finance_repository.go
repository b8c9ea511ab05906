package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"time"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
	"golang-stock-sentinel/pkg/logger"

	"golang.org/x/time/rate"
)

// priceFields is the column order assembled from the chart API quote block.
var priceFields = []string{"Open", "High", "Low", "Close", "Volume"}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a PriceRepository backed by the Yahoo
// Finance v8 chart API.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) (PriceRepository, error) {
	if cfg.YahooFinance.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("yahoo_finance.max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

// GetDailyPrices fetches the chart for every requested ticker and assembles a
// two-level raw table: one row per trading date across all tickers, one column
// per (field, ticker) pair, NaN where a ticker has no value for a date.
func (r *yahooFinanceRepository) GetDailyPrices(ctx context.Context, tickers []string, priceRange, interval string) (*entity.RawPriceTable, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers requested")
	}

	type tickerSeries struct {
		ticker string
		byDate map[time.Time]map[string]float64
	}

	var series []tickerSeries
	dateSet := make(map[time.Time]struct{})

	for _, ticker := range tickers {
		result, err := r.fetchChart(ctx, ticker, priceRange, interval)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chart for %s: %w", ticker, err)
		}
		if result == nil {
			r.log.WarnContext(ctx, "Chart API returned no result", logger.StringField("ticker", ticker))
			continue
		}

		byDate := make(map[time.Time]map[string]float64, len(result.Timestamp))
		var quote dto.YahooQuote
		if len(result.Indicators.Quote) > 0 {
			quote = result.Indicators.Quote[0]
		}
		for i, ts := range result.Timestamp {
			day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
			row := map[string]float64{
				"Open":   derefOrNaN(at(quote.Open, i)),
				"High":   derefOrNaN(at(quote.High, i)),
				"Low":    derefOrNaN(at(quote.Low, i)),
				"Close":  derefOrNaN(at(quote.Close, i)),
				"Volume": derefInt64OrNaN(atInt64(quote.Volume, i)),
			}
			if _, exists := byDate[day]; exists {
				continue
			}
			byDate[day] = row
			dateSet[day] = struct{}{}
		}
		series = append(series, tickerSeries{ticker: ticker, byDate: byDate})
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	table := &entity.RawPriceTable{
		Dates:      dates,
		MultiLevel: true,
	}
	for _, s := range series {
		for _, field := range priceFields {
			values := make([]float64, len(dates))
			for i, d := range dates {
				if row, ok := s.byDate[d]; ok {
					values[i] = row[field]
				} else {
					values[i] = math.NaN()
				}
			}
			table.Columns = append(table.Columns, entity.RawPriceColumn{
				Field:  field,
				Ticker: s.ticker,
				Values: values,
			})
		}
	}

	return table, nil
}

func (r *yahooFinanceRepository) fetchChart(ctx context.Context, ticker, priceRange, interval string) (*dto.YahooChartResult, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", logger.ErrorField(err))
		return nil, err
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s", r.cfg.YahooFinance.BaseURL, ticker, priceRange, interval)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("ticker", ticker),
		)
		return nil, fmt.Errorf("yahoo finance returned status %d for %s", resp.StatusCode, ticker)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var chartResp dto.YahooChartResponse
	if err := json.Unmarshal(body, &chartResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart response: %w", err)
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error %s: %s", chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, nil
	}
	return &chartResp.Chart.Result[0], nil
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func atInt64(values []*int64, i int) *int64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func derefOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func derefInt64OrNaN(v *int64) float64 {
	if v == nil {
		return math.NaN()
	}
	return float64(*v)
}
