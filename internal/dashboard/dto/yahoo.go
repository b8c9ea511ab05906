package dto

// YahooChartResponse is the top-level payload of the Yahoo Finance v8 chart API.
type YahooChartResponse struct {
	Chart YahooChartData `json:"chart"`
}

type YahooChartData struct {
	Result []YahooChartResult `json:"result"`
	Error  *YahooChartError   `json:"error"`
}

type YahooChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type YahooChartResult struct {
	Meta       YahooChartMeta  `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators YahooIndicators `json:"indicators"`
}

type YahooChartMeta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	PreviousClose      float64 `json:"previousClose"`
}

type YahooIndicators struct {
	Quote []YahooQuote `json:"quote"`
}

// YahooQuote carries per-field value slices aligned with the timestamp slice.
// Entries are pointers because the API returns null for halted or missing days.
type YahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}
