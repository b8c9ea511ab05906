package entity

// SentimentLabel is a closed-set sentiment classification outcome.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// IsValid reports whether l belongs to the closed label set.
func (l SentimentLabel) IsValid() bool {
	switch l {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// NewsArticle is one uniform news record. Title and Description are pointers
// because news providers legitimately return articles without them.
type NewsArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PublishedAt string  `json:"published_at"`
	Source      string  `json:"source"`
}

// LabeledArticle is a NewsArticle with its classified sentiment attached.
type LabeledArticle struct {
	NewsArticle
	Sentiment SentimentLabel `json:"sentiment"`
}

// SentimentSummary maps each sentiment label that occurred at least once to
// its count over a fixed article collection.
type SentimentSummary map[SentimentLabel]int

// Total returns the number of articles covered by the summary.
func (s SentimentSummary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
