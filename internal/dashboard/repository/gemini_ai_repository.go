package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
	"golang-stock-sentinel/pkg/logger"
	"golang-stock-sentinel/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is a TextClassifier that classifies headlines through the
// Google Gemini API with a structured-output prompt.
type geminiAIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	genAiClient    *genai.Client
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
}

// NewGeminiAIRepository creates a new Gemini-backed TextClassifier.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (TextClassifier, error) {
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("gemini.max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	return &geminiAIRepository{
		cfg:            cfg,
		log:            log,
		genAiClient:    genAiClient,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

// Classify prompts the model for a sentiment label and confidence score.
func (r *geminiAIRepository) Classify(ctx context.Context, text string) (*dto.SentimentPrediction, error) {
	prompt := BuildClassifySentimentPrompt(text)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.log.DebugContext(ctx, "Gemini token count",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return parseGeminiSentiment(resp.Text())
}

// parseGeminiSentiment extracts the (label, score) pair from the model output,
// tolerating markdown code fences around the JSON.
func parseGeminiSentiment(text string) (*dto.SentimentPrediction, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result dto.GeminiSentimentResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}

	label := entity.SentimentLabel(strings.ToUpper(result.Label))
	if !label.IsValid() {
		return nil, fmt.Errorf("gemini returned unknown label %q", result.Label)
	}

	return &dto.SentimentPrediction{Label: label, Score: result.Score}, nil
}
