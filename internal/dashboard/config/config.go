package config

import (
	"golang-stock-sentinel/pkg/config"
)

// Dashboard holds dashboard pipeline configuration.
type Dashboard struct {
	PriceRange           string   `mapstructure:"price_range"`
	PriceInterval        string   `mapstructure:"price_interval"`
	MaxNewsPerTicker     int      `mapstructure:"max_news_per_ticker"`
	MaxConcurrentTickers int      `mapstructure:"max_concurrent_tickers"`
	Watchlist            []string `mapstructure:"watchlist"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// News holds configuration for the news source.
type News struct {
	Provider            string `mapstructure:"provider"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// NewsAPI holds the configuration for the NewsAPI provider.
type NewsAPI struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	PageSize int    `mapstructure:"page_size"`
}

// GoogleRSS holds the configuration for the Google News RSS provider.
type GoogleRSS struct {
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
	Country  string `mapstructure:"country"`
}

// AI holds configuration for sentiment classifier providers.
type AI struct {
	Provider      string `mapstructure:"provider"`
	MaxConcurrent int    `mapstructure:"max_concurrent"`
}

// HuggingFace holds the configuration for the HuggingFace inference API.
type HuggingFace struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Telegram holds configuration for the Telegram digest notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Digest holds configuration for the scheduled watchlist digest.
type Digest struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	API          config.API    `mapstructure:"api"`
	Cache        config.Cache  `mapstructure:"cache"`
	Dashboard    Dashboard     `mapstructure:"dashboard"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	News         News          `mapstructure:"news"`
	NewsAPI      NewsAPI       `mapstructure:"news_api"`
	GoogleRSS    GoogleRSS     `mapstructure:"google_rss"`
	AI           AI            `mapstructure:"ai"`
	HuggingFace  HuggingFace   `mapstructure:"huggingface"`
	Gemini       Gemini        `mapstructure:"gemini"`
	Telegram     Telegram      `mapstructure:"telegram"`
	Digest       Digest        `mapstructure:"digest"`
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
