package models

import (
	"errors"
	"fmt"
)

// Search failure codes. They appear in API error bodies and decide the
// HTTP status a failed search is answered with.
const (
	// ErrCodeTimeout: the trigger or input never became clickable, or the
	// whole search ran past its deadline.
	ErrCodeTimeout = "SCRAPE_TIMEOUT"
	// ErrCodeNavigation: the board did not load or an interaction failed.
	ErrCodeNavigation = "NAVIGATION_FAILED"
	// ErrCodeExtraction: the results snapshot could not be parsed.
	ErrCodeExtraction = "CONTENT_EXTRACTION_FAILED"
	// ErrCodeBrowserCrash: Chrome did not start, or the automation panicked.
	ErrCodeBrowserCrash = "BROWSER_CRASH"
	// ErrCodeInvalidInput: blank query or malformed request.
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeBusy: the caller gave up waiting for a free browser session.
	ErrCodeBusy = "SEARCH_BUSY"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the error object of a failed API response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScrapeError is a search failure tagged with one of the codes above.
// Message is safe to show users; Err keeps the underlying cause.
type ScrapeError struct {
	Code    string
	Message string
	Err     error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// ToDetail drops the cause; only code and message reach API clients.
func (e *ScrapeError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// CodeOf returns the code of the first ScrapeError in err's chain,
// ErrCodeInternal for any other error and "" for nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
