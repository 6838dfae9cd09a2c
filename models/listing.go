package models

// JobListing is one scraped search result. Fields are the element text
// with surrounding whitespace removed and are otherwise kept verbatim.
type JobListing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}
