package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
	"golang-stock-sentinel/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardService struct {
	snapshot *dto.DashboardSnapshot
	news     *dto.TickerSentiment
	err      error
}

func (f *fakeDashboardService) BuildSnapshot(_ context.Context, tickers []string) (*dto.DashboardSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	snapshot := *f.snapshot
	snapshot.Tickers = tickers
	return &snapshot, nil
}

func (f *fakeDashboardService) TickerNews(_ context.Context, _ string) (*dto.TickerSentiment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.news, nil
}

func newTestHandler(t *testing.T, svc *fakeDashboardService) *DashboardHandler {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return NewDashboardHandler(svc, log)
}

func TestGetDashboard(t *testing.T) {
	svc := &fakeDashboardService{
		snapshot: &dto.DashboardSnapshot{
			Sentiment:   []dto.TickerSentiment{{Ticker: "AAPL", Summary: map[entity.SentimentLabel]int{entity.SentimentPositive: 2}}},
			GeneratedAt: time.Now().UTC(),
		},
	}
	handler := newTestHandler(t, svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?tickers=AAPL,%20MSFT", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetDashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var snapshot dto.DashboardSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, []string{"AAPL", "MSFT"}, snapshot.Tickers, "tickers parsed from the comma-separated query")
	require.Len(t, snapshot.Sentiment, 1)
	assert.Equal(t, "AAPL", snapshot.Sentiment[0].Ticker)
}

func TestGetDashboard_MissingTickers(t *testing.T) {
	handler := newTestHandler(t, &fakeDashboardService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetDashboard(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTickerNews(t *testing.T) {
	svc := &fakeDashboardService{
		news: &dto.TickerSentiment{
			Ticker:  "TSLA",
			Summary: map[entity.SentimentLabel]int{entity.SentimentNegative: 1},
		},
	}
	handler := newTestHandler(t, svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/tickers/:symbol/news")
	c.SetParamNames("symbol")
	c.SetParamValues("TSLA")

	require.NoError(t, handler.GetTickerNews(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result dto.TickerSentiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "TSLA", result.Ticker)
	assert.Equal(t, 1, result.Summary[entity.SentimentNegative])
}
