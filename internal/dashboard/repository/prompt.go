package repository

import "fmt"

// BuildClassifySentimentPrompt builds the prompt used by the Gemini-backed
// classifier. The model is asked for strict JSON so the response parses into a
// (label, score) pair.
func BuildClassifySentimentPrompt(headline string) string {
	return fmt.Sprintf(`You are a financial sentiment classifier.
Classify the sentiment of the following stock market news headline.

Headline: %q

Respond with JSON only, no markdown, in exactly this format:
{"label": "POSITIVE" | "NEGATIVE" | "NEUTRAL", "score": <confidence between 0 and 1>}`, headline)
}
