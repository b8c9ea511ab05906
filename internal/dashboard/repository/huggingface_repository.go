package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
	"golang-stock-sentinel/pkg/logger"

	"golang.org/x/time/rate"
)

type huggingFaceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewHuggingFaceRepository creates a TextClassifier backed by the HuggingFace
// inference API running a financial sentiment model. The remote model weights
// load on first use; wait_for_model keeps that cost to the first call of the
// process instead of failing it.
func NewHuggingFaceRepository(cfg *config.Config, log *logger.Logger) (TextClassifier, error) {
	if cfg.HuggingFace.Model == "" {
		return nil, fmt.Errorf("huggingface.model is required")
	}
	if cfg.HuggingFace.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("huggingface.max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.HuggingFace.MaxRequestPerMinute)
	return &huggingFaceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

// Classify sends the text to the inference endpoint and returns the top-ranked
// prediction mapped into the closed label set.
func (r *huggingFaceRepository) Classify(ctx context.Context, text string) (*dto.SentimentPrediction, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.HuggingFaceRequest{
		Inputs: text,
		Options: dto.HuggingFaceOptions{
			WaitForModel: true,
			UseCache:     true,
		},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s", r.cfg.HuggingFace.BaseURL, r.cfg.HuggingFace.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.HuggingFace.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.HuggingFace.APIKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to HuggingFace API", logger.ErrorField(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from HuggingFace API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(body)),
		)
		return nil, fmt.Errorf("huggingface returned status %d", resp.StatusCode)
	}

	// The text-classification pipeline wraps candidates in a nested array,
	// one inner array per input, sorted by score descending.
	var candidates [][]dto.HuggingFaceClassification
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification response: %w", err)
	}
	if len(candidates) == 0 || len(candidates[0]) == 0 {
		return nil, fmt.Errorf("classification response contained no candidates")
	}

	top := candidates[0][0]
	label := entity.SentimentLabel(strings.ToUpper(top.Label))
	if !label.IsValid() {
		return nil, fmt.Errorf("classifier returned unknown label %q", top.Label)
	}

	return &dto.SentimentPrediction{Label: label, Score: top.Score}, nil
}
