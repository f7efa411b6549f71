package usage

import "time"

// Data is the root structure stored in persistence.
type Data struct {
	Version   string          `json:"version"`
	Updated   time.Time       `json:"updated"`
	Aggregate AggregatedStats `json:"aggregate"`
}

// AggregatedStats holds counters broken down by various dimensions.
type AggregatedStats struct {
	Total       TokenCounts            `json:"total"`
	ByModel     map[string]TokenCounts `json:"by_model"`
	ByOperation map[string]TokenCounts `json:"by_operation"` // posts, campaign, hashtags, ...
	ByBrand     map[string]TokenCounts `json:"by_brand"`
}

// TokenCounts holds request and token sums.
type TokenCounts struct {
	Requests int64 `json:"requests"`
	Input    int64 `json:"input"`
	Output   int64 `json:"output"`
	Total    int64 `json:"total"`
}

// Add records one request.
func (tc *TokenCounts) Add(input, output int) {
	tc.Requests++
	tc.Input += int64(input)
	tc.Output += int64(output)
	tc.Total += int64(input + output)
}
