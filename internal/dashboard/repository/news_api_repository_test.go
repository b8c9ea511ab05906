package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func newsAPIConfig(baseURL string) *config.Config {
	return &config.Config{
		News: config.News{Provider: "newsapi", MaxRequestPerMinute: 600},
		NewsAPI: config.NewsAPI{
			BaseURL:  baseURL,
			APIKey:   "test-key",
			PageSize: 20,
		},
	}
}

func TestNewsAPISearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"source": {"id": null, "name": "Reuters"}, "title": "Apple soars", "description": "up", "publishedAt": "2024-03-01T10:00:00Z"},
				{"source": {"id": "bbg", "name": "Bloomberg"}, "title": null, "description": null, "publishedAt": "2024-03-01T11:00:00Z"}
			]
		}`))
	}))
	defer server.Close()

	repo, err := NewNewsAPIRepository(newsAPIConfig(server.URL), testLogger(t))
	require.NoError(t, err)

	articles, err := repo.Search(context.Background(), "AAPL", 20)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Apple soars", *articles[0].Title)
	assert.Equal(t, "Reuters", articles[0].Source.Name)
	assert.Nil(t, articles[1].Title, "null titles survive extraction as absent")
	assert.Equal(t, "Bloomberg", articles[1].Source.Name)
}

func TestNewsAPISearch_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid"}`))
	}))
	defer server.Close()

	repo, err := NewNewsAPIRepository(newsAPIConfig(server.URL), testLogger(t))
	require.NoError(t, err)

	articles, err := repo.Search(context.Background(), "AAPL", 20)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
	assert.Nil(t, articles)
}

func TestNewNewsAPIRepository_RequiresKey(t *testing.T) {
	cfg := newsAPIConfig("http://localhost")
	cfg.NewsAPI.APIKey = ""
	_, err := NewNewsAPIRepository(cfg, testLogger(t))
	assert.Error(t, err)
}
