package models

import "strings"

// SearchRequest is the payload for POST /api/v1/search.
type SearchRequest struct {
	// Query is the job-search keyword typed into the board's search field.
	Query string `json:"query"`

	// Format controls whether a Markdown rendering of the listings is
	// included. Allowed: "json" (default), "markdown".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=json markdown"`
}

// Defaults applies default values to unset fields.
func (r *SearchRequest) Defaults() {
	if r.Format == "" {
		r.Format = "json"
	}
}

// IsBlankQuery reports whether q contains nothing but whitespace.
func IsBlankQuery(q string) bool {
	return strings.TrimSpace(q) == ""
}
