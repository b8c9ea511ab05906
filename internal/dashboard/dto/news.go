package dto

// RawNewsSource is the nested source record of a raw article; only the display
// name is carried forward into the uniform news table.
type RawNewsSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// RawNewsArticle is one article record as returned by a news provider before
// extraction. Title and Description may be null.
type RawNewsArticle struct {
	Source      RawNewsSource `json:"source"`
	Author      *string       `json:"author"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

// NewsAPIResponse is the payload of the NewsAPI /v2/everything endpoint.
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []RawNewsArticle `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}
