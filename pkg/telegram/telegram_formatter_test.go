package telegram

import (
	"strings"
	"testing"
	"time"

	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSentimentDigest_Empty(t *testing.T) {
	messages := FormatSentimentDigest(nil)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "No sentiment data")

	messages = FormatSentimentDigest(&dto.DashboardSnapshot{})
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "No sentiment data")
}

func TestFormatSentimentDigest_SingleMessage(t *testing.T) {
	snapshot := &dto.DashboardSnapshot{
		GeneratedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Sentiment: []dto.TickerSentiment{
			{
				Ticker: "AAPL",
				Summary: map[entity.SentimentLabel]int{
					entity.SentimentPositive: 3,
					entity.SentimentNegative: 1,
				},
			},
			{Ticker: "MSFT", Warning: "no news found"},
		},
	}

	messages := FormatSentimentDigest(snapshot)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Contains(t, msg, "*Market Sentiment Digest*")
	assert.Contains(t, msg, "AAPL")
	assert.Contains(t, msg, "*Headlines:* 4")
	assert.Contains(t, msg, "*POSITIVE:* 3")
	assert.Contains(t, msg, "*NEGATIVE:* 1")
	assert.NotContains(t, msg, "*NEUTRAL:*", "labels with zero count are omitted")
	assert.Contains(t, msg, "no news found")
}

func TestFormatSentimentDigest_SplitsLongDigests(t *testing.T) {
	var sentiment []dto.TickerSentiment
	for i := 0; i < 300; i++ {
		sentiment = append(sentiment, dto.TickerSentiment{
			Ticker: strings.Repeat("X", 10),
			Summary: map[entity.SentimentLabel]int{
				entity.SentimentPositive: 1,
				entity.SentimentNegative: 2,
				entity.SentimentNeutral:  3,
			},
		})
	}
	snapshot := &dto.DashboardSnapshot{GeneratedAt: time.Now(), Sentiment: sentiment}

	messages := FormatSentimentDigest(snapshot)
	assert.Greater(t, len(messages), 1)
	for _, msg := range messages {
		assert.LessOrEqual(t, len(msg), 4096)
	}
	assert.Contains(t, messages[1], "Part 2")
}
