package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/pkg/logger"

	"golang.org/x/time/rate"
)

type newsAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a NewsRepository backed by the NewsAPI
// /v2/everything endpoint.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) (NewsRepository, error) {
	if cfg.NewsAPI.APIKey == "" {
		return nil, fmt.Errorf("news_api.api_key is required")
	}
	if cfg.News.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("news.max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.News.MaxRequestPerMinute)
	return &newsAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

// Search queries NewsAPI for articles matching the query, newest first, in the
// order the provider returns them.
func (r *newsAPIRepository) Search(ctx context.Context, query string, limit int) ([]dto.RawNewsArticle, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", logger.ErrorField(err))
		return nil, err
	}

	pageSize := r.cfg.NewsAPI.PageSize
	if limit > 0 && limit < pageSize {
		pageSize = limit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(pageSize))

	endpoint := fmt.Sprintf("%s/v2/everything?%s", r.cfg.NewsAPI.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", r.cfg.NewsAPI.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to NewsAPI", logger.ErrorField(err), logger.StringField("query", query))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var newsResp dto.NewsAPIResponse
	if err := json.Unmarshal(body, &newsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal news response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || newsResp.Status != "ok" {
		r.log.ErrorContext(ctx, "Received error response from NewsAPI",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("code", newsResp.Code),
			logger.StringField("message", newsResp.Message),
		)
		return nil, fmt.Errorf("newsapi error %s: %s", newsResp.Code, newsResp.Message)
	}

	r.log.DebugContext(ctx, "NewsAPI search completed",
		logger.StringField("query", query),
		logger.IntField("total_results", newsResp.TotalResults),
		logger.IntField("returned", len(newsResp.Articles)),
	)

	return newsResp.Articles, nil
}
