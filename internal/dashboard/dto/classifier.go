package dto

import "golang-stock-sentinel/internal/entity"

// SentimentPrediction is the top-ranked output of a text classifier for one
// input text.
type SentimentPrediction struct {
	Label entity.SentimentLabel `json:"label"`
	Score float64               `json:"score"`
}

// HuggingFaceClassification is one (label, score) pair from the HuggingFace
// text-classification inference API. The API returns candidates wrapped in a
// doubly nested array, sorted by score descending.
type HuggingFaceClassification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HuggingFaceRequest is the request payload for the inference API.
type HuggingFaceRequest struct {
	Inputs  string                 `json:"inputs"`
	Options HuggingFaceOptions     `json:"options"`
	Params  map[string]interface{} `json:"parameters,omitempty"`
}

// HuggingFaceOptions controls model loading behaviour on the inference side.
type HuggingFaceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// GeminiSentimentResult is the structured JSON the Gemini classifier prompt
// asks the model to produce.
type GeminiSentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
