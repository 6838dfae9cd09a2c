package models

// SearchResponse is the response for POST /api/v1/search.
type SearchResponse struct {
	// Success indicates whether the search completed without errors.
	// A search that found nothing is still successful.
	Success bool `json:"success"`

	Query string `json:"query"`
	Count int    `json:"count"`

	// Listings is always present; empty on failure.
	Listings []JobListing `json:"listings"`

	// Markdown is the rendered card list, set when format=markdown.
	Markdown string `json:"markdown,omitempty"`

	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// SearchMs is the time spent driving the browser and extracting.
	SearchMs int64 `json:"search_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status      string      `json:"status"` // "healthy" or "busy"
	Uptime      string      `json:"uptime"`
	SearchStats SearchStats `json:"search_stats"`
	Version     string      `json:"version"`
}

// SearchStats reports browser session usage.
type SearchStats struct {
	MaxConcurrent int   `json:"max_concurrent"`
	InFlight      int   `json:"in_flight"`
	Total         int64 `json:"total"`
	Failed        int64 `json:"failed"`
}
