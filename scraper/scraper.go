package scraper

import (
	"sync/atomic"

	"github.com/use-agent/jobscout/config"
	"github.com/use-agent/jobscout/extract"
	"github.com/use-agent/jobscout/models"
	"golang.org/x/sync/semaphore"
)

// Scraper runs job searches against the board, one browser per search.
// It is safe for concurrent use; at most MaxConcurrent searches hold a
// browser at the same time and the rest wait their turn.
type Scraper struct {
	browserCfg config.BrowserConfig
	searchCfg  config.SearchConfig
	extractor  *extract.Extractor
	launch     Launcher

	gate          *semaphore.Weighted
	maxConcurrent int
	inFlight      atomic.Int32
	total         atomic.Int64
	failed        atomic.Int64
}

// NewScraper compiles the result selectors and prepares the session gate.
// No browser is started until the first search.
func NewScraper(browserCfg config.BrowserConfig, searchCfg config.SearchConfig) (*Scraper, error) {
	ex, err := extract.New(extract.Selectors{
		Card:     searchCfg.CardSelector,
		Title:    searchCfg.TitleSelector,
		Company:  searchCfg.CompanySelector,
		Location: searchCfg.LocationSelector,
	})
	if err != nil {
		return nil, err
	}

	maxConcurrent := searchCfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	s := &Scraper{
		browserCfg:    browserCfg,
		searchCfg:     searchCfg,
		extractor:     ex,
		gate:          semaphore.NewWeighted(int64(maxConcurrent)),
		maxConcurrent: maxConcurrent,
	}
	s.launch = s.launchRod
	return s, nil
}

// Stats returns a snapshot of session usage.
func (s *Scraper) Stats() models.SearchStats {
	return models.SearchStats{
		MaxConcurrent: s.maxConcurrent,
		InFlight:      int(s.inFlight.Load()),
		Total:         s.total.Load(),
		Failed:        s.failed.Load(),
	}
}
