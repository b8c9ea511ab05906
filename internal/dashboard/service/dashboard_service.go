package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/dashboard/repository"
	"golang-stock-sentinel/internal/entity"
	"golang-stock-sentinel/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// DashboardService builds dashboard snapshots: a chartable price table for the
// requested ticker set plus a labeled news table and sentiment distribution
// per ticker.
type DashboardService interface {
	BuildSnapshot(ctx context.Context, tickers []string) (*dto.DashboardSnapshot, error)
	TickerNews(ctx context.Context, ticker string) (*dto.TickerSentiment, error)
}

type dashboardService struct {
	cfg         *config.Config
	log         *logger.Logger
	priceRepo   repository.PriceRepository
	newsRepo    repository.NewsRepository
	labeler     *SentimentLabeler
	resultCache *gocache.Cache
}

// NewDashboardService creates a DashboardService. The cache holds raw
// collaborator results keyed by request parameters, so repeated requests
// within the TTL do not hit the providers again.
func NewDashboardService(
	cfg *config.Config,
	log *logger.Logger,
	priceRepo repository.PriceRepository,
	newsRepo repository.NewsRepository,
	labeler *SentimentLabeler,
	resultCache *gocache.Cache,
) DashboardService {
	return &dashboardService{
		cfg:         cfg,
		log:         log,
		priceRepo:   priceRepo,
		newsRepo:    newsRepo,
		labeler:     labeler,
		resultCache: resultCache,
	}
}

// BuildSnapshot runs the price flow once for the whole ticker set and the news
// flow per ticker. Per-ticker news failures become warnings on that ticker's
// entry; a price failure becomes a snapshot-level warning. Neither aborts the
// remaining work.
func (s *dashboardService) BuildSnapshot(ctx context.Context, tickers []string) (*dto.DashboardSnapshot, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("at least one ticker is required")
	}
	tickers = normalizeTickers(tickers)

	snapshot := &dto.DashboardSnapshot{
		Tickers:     tickers,
		Sentiment:   make([]dto.TickerSentiment, len(tickers)),
		GeneratedAt: time.Now().UTC(),
	}

	flat, err := s.chartableTable(ctx, tickers)
	switch {
	case err == nil:
		snapshot.PriceChart = projectPriceChart(flat)
	case errors.Is(err, ErrMissingDateColumn), errors.Is(err, ErrMissingCloseColumn):
		s.log.WarnContext(ctx, "Price table not chartable", logger.ErrorField(err), logger.Field("tickers", tickers))
		snapshot.PriceWarning = err.Error()
	default:
		s.log.ErrorContext(ctx, "Failed to fetch price data", logger.ErrorField(err), logger.Field("tickers", tickers))
		snapshot.PriceWarning = "price data source unavailable"
	}

	maxConcurrent := s.cfg.Dashboard.MaxConcurrentTickers
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snapshot.Sentiment[i] = s.tickerSentiment(gctx, ticker)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// TickerNews runs only the news flow for one ticker.
func (s *dashboardService) TickerNews(ctx context.Context, ticker string) (*dto.TickerSentiment, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	result := s.tickerSentiment(ctx, ticker)
	return &result, nil
}

// tickerSentiment is one ticker's four-stage news pipeline: fetch, extract,
// label, aggregate. The stages stay sequential within a ticker.
func (s *dashboardService) tickerSentiment(ctx context.Context, ticker string) dto.TickerSentiment {
	result := dto.TickerSentiment{Ticker: ticker}

	articles := s.fetchArticles(ctx, ticker)
	if len(articles) == 0 {
		result.Articles = []dto.NewsRow{}
		result.Summary = entity.SentimentSummary{}
		result.Warning = "no news found"
		return result
	}

	labeled := s.labeler.Label(ctx, articles)
	result.Articles = projectNewsRows(labeled)
	result.Summary = SummarizeSentiment(labeled)
	return result
}

// fetchArticles retrieves and extracts raw articles for a ticker. A provider
// failure is recoverable at this granularity and maps to an empty table.
func (s *dashboardService) fetchArticles(ctx context.Context, ticker string) []entity.NewsArticle {
	cacheKey := "news:" + ticker
	if cached, found := s.resultCache.Get(cacheKey); found {
		if raw, ok := cached.([]dto.RawNewsArticle); ok {
			return ExtractArticles(raw)
		}
	}

	raw, err := s.newsRepo.Search(ctx, ticker, s.cfg.Dashboard.MaxNewsPerTicker)
	if err != nil {
		s.log.WarnContext(ctx, "News source unavailable, continuing with empty table",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
		return ExtractArticles(nil)
	}

	s.resultCache.SetDefault(cacheKey, raw)
	return ExtractArticles(raw)
}

// chartableTable fetches (or replays from cache) the raw price table for the
// ticker set and normalizes it.
func (s *dashboardService) chartableTable(ctx context.Context, tickers []string) (*entity.FlatPriceTable, error) {
	cacheKey := fmt.Sprintf("prices:%s:%s:%s", strings.Join(tickers, ","), s.cfg.Dashboard.PriceRange, s.cfg.Dashboard.PriceInterval)
	if cached, found := s.resultCache.Get(cacheKey); found {
		if raw, ok := cached.(*entity.RawPriceTable); ok {
			return NormalizePriceTable(raw, tickers)
		}
	}

	raw, err := s.priceRepo.GetDailyPrices(ctx, tickers, s.cfg.Dashboard.PriceRange, s.cfg.Dashboard.PriceInterval)
	if err != nil {
		return nil, err
	}
	s.resultCache.SetDefault(cacheKey, raw)

	return NormalizePriceTable(raw, tickers)
}

func normalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	seen := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// projectPriceChart shapes a flat price table for a line chart keyed by Date.
// NaN cells (dates a ticker did not trade, null quote fields) are left out of
// the point map: absent keys render as gaps, and NaN has no JSON encoding.
func projectPriceChart(flat *entity.FlatPriceTable) *dto.PriceChart {
	chart := &dto.PriceChart{
		Columns: flat.ColumnNames(),
		Points:  make([]dto.PricePoint, 0, flat.Rows()),
	}
	for i, date := range flat.Dates {
		point := dto.PricePoint{
			Date:   date,
			Values: make(map[string]float64, len(flat.Columns)),
		}
		for _, col := range flat.Columns {
			if i < len(col.Values) && !math.IsNaN(col.Values[i]) {
				point.Values[col.Name] = col.Values[i]
			}
		}
		chart.Points = append(chart.Points, point)
	}
	return chart
}

// projectNewsRows projects labeled articles to the tabular display shape.
func projectNewsRows(labeled []entity.LabeledArticle) []dto.NewsRow {
	rows := make([]dto.NewsRow, 0, len(labeled))
	for _, article := range labeled {
		title := ""
		if article.Title != nil {
			title = *article.Title
		}
		rows = append(rows, dto.NewsRow{
			Title:       title,
			Source:      article.Source,
			PublishedAt: article.PublishedAt,
			Sentiment:   article.Sentiment,
		})
	}
	return rows
}
