package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
)

// FormatSentimentDigest formats a dashboard snapshot into Markdown messages
// for Telegram, splitting so no message exceeds the Telegram length limit.
func FormatSentimentDigest(snapshot *dto.DashboardSnapshot) []string {
	if snapshot == nil || len(snapshot.Sentiment) == 0 {
		return []string{"No sentiment data available for the watchlist today."}
	}

	const maxLen = 4090
	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString("📰 *Market Sentiment Digest* 📰\n")
			currentMessage.WriteString(fmt.Sprintf("_%s_\n\n", snapshot.GeneratedAt.Format(time.RFC1123)))
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*Market Sentiment Digest Part %d*---\n\n", part))
		}
	}

	startNewPart()

	for _, ticker := range snapshot.Sentiment {
		entry := formatTickerEntry(ticker)
		if currentMessage.Len()+len(entry) > maxLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entry)
	}

	if currentMessage.Len() > 0 {
		messages = append(messages, currentMessage.String())
	}
	return messages
}

func formatTickerEntry(ticker dto.TickerSentiment) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", ticker.Ticker))

	if ticker.Warning != "" {
		b.WriteString(fmt.Sprintf("⚠️ %s\n\n", ticker.Warning))
		return b.String()
	}

	total := 0
	for _, count := range ticker.Summary {
		total += count
	}
	b.WriteString(fmt.Sprintf("🗞 *Headlines:* %d\n", total))

	for _, label := range []entity.SentimentLabel{entity.SentimentPositive, entity.SentimentNegative, entity.SentimentNeutral} {
		count, ok := ticker.Summary[label]
		if !ok {
			continue
		}
		var icon string
		switch label {
		case entity.SentimentPositive:
			icon = "😊"
		case entity.SentimentNegative:
			icon = "😟"
		default:
			icon = "😐"
		}
		b.WriteString(fmt.Sprintf("%s *%s:* %d\n", icon, label, count))
	}

	b.WriteString("\n")
	return b.String()
}
