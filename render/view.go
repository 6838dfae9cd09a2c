package render

import (
	"errors"
	"fmt"

	"github.com/use-agent/jobscout/models"
)

// NoticeKind selects how a notice is styled.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// User-facing notice texts.
const (
	MsgBlankQuery = "Please enter a valid search query."
	MsgNoResults  = "No results found, or there was an issue loading the results."
)

// Notice is a single status banner shown above the results.
type Notice struct {
	Kind NoticeKind
	Text string
}

// View is everything the results page needs for one search.
type View struct {
	Query    string
	Notices  []Notice
	Listings []models.JobListing
}

// NewView builds the view for a finished (or short-circuited) search.
// Listings are only shown when the search succeeded.
func NewView(query string, listings []models.JobListing, err error) View {
	v := View{Query: query}

	switch {
	case models.IsBlankQuery(query):
		v.Notices = []Notice{{Kind: NoticeWarning, Text: MsgBlankQuery}}
	case err != nil:
		v.Notices = []Notice{
			{Kind: NoticeError, Text: "An error occurred during scraping: " + errorText(err)},
			{Kind: NoticeInfo, Text: MsgNoResults},
		}
	case len(listings) == 0:
		v.Notices = []Notice{{Kind: NoticeInfo, Text: MsgNoResults}}
	default:
		v.Notices = []Notice{{
			Kind: NoticeSuccess,
			Text: fmt.Sprintf("Found %d jobs for '%s'!", len(listings), query),
		}}
		v.Listings = listings
	}
	return v
}

// errorText prefers the human part of a ScrapeError over its full chain.
func errorText(err error) string {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		if se.Err != nil {
			return se.Message + ": " + se.Err.Error()
		}
		return se.Message
	}
	return err.Error()
}
