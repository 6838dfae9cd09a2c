package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/jobscout/models"
)

// RunSearch submits query to the job board and returns the listings on the
// first results page.
//
// It never returns partial results: on any failure the listings are nil and
// the error is a *models.ScrapeError. A search that renders no results is
// not a failure and returns an empty slice.
//
// Lifecycle:
//
//  1. Reject blank queries      – no browser is started
//  2. Acquire the session gate  – serializes browsers across callers
//  3. Launch                    – fresh Chrome with the configured flags
//  4. DEFER: Close              – exactly once, on every exit path
//  5. Navigate                  – load the board's home page
//  6. Trigger                   – wait clickable, click (from script if covered or if the click fails)
//  7. Input                     – wait clickable, click, type, Enter
//  8. Settle                    – wait for the first result, bounded
//  9. Extract                   – snapshot the DOM and read the listings
func (s *Scraper) RunSearch(ctx context.Context, query string) (listings []models.JobListing, err error) {
	// ── 1. Validate ───────────────────────────────────────────────────
	if models.IsBlankQuery(query) {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "search query is empty", nil)
	}

	// ── 2. Session gate ───────────────────────────────────────────────
	if err := s.gate.Acquire(ctx, 1); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBusy, "gave up waiting for a free browser session", err)
	}
	defer s.gate.Release(1)

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	s.total.Add(1)

	ctx, cancel := context.WithTimeout(ctx, s.searchCfg.SearchTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			listings = nil
			err = models.NewScrapeError(models.ErrCodeBrowserCrash, "browser automation panicked", fmt.Errorf("%v", r))
		}
		if err != nil {
			s.failed.Add(1)
			slog.Warn("search failed", "query", query, "code", models.CodeOf(err), "elapsed", time.Since(start), "error", err)
			return
		}
		slog.Info("search finished", "query", query, "listings", len(listings), "elapsed", time.Since(start))
	}()

	// ── 3. Launch ─────────────────────────────────────────────────────
	sess, err := s.launch(ctx)
	if err != nil {
		return nil, asScrapeError(err, models.ErrCodeBrowserCrash, "failed to start browser session")
	}

	// ── 4. Guaranteed teardown ────────────────────────────────────────
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			slog.Debug("browser close reported an error", "error", closeErr)
		}
	}()

	return s.search(ctx, sess, query)
}

// search drives an open session through steps 5-9 of RunSearch.
func (s *Scraper) search(ctx context.Context, sess Session, query string) ([]models.JobListing, error) {
	cfg := s.searchCfg

	// ── 5. Navigate ───────────────────────────────────────────────────
	if err := sess.Navigate(ctx, cfg.TargetURL); err != nil {
		return nil, categorizeError(err, "navigation to job board failed")
	}
	slog.Debug("job board loaded", "url", cfg.TargetURL)

	// ── 6. Reveal the search field ────────────────────────────────────
	if err := s.clickWhenReady(ctx, sess, cfg.TriggerSelector); err != nil {
		return nil, categorizeError(err, "search trigger was not clickable")
	}

	// ── 7. Enter the query ────────────────────────────────────────────
	field, err := s.waitClickable(ctx, sess, cfg.InputSelector)
	if err != nil {
		return nil, categorizeError(err, "search input was not clickable")
	}
	if err := s.activate(ctx, field); err != nil {
		return nil, categorizeError(err, "failed to focus search input")
	}
	if err := field.Input(ctx, query); err != nil {
		return nil, categorizeError(err, "failed to type search query")
	}
	if err := field.PressEnter(ctx); err != nil {
		return nil, categorizeError(err, "failed to submit search query")
	}
	slog.Debug("query submitted", "query", query)

	// ── 8. Settle ─────────────────────────────────────────────────────
	s.settle(ctx, sess)

	// ── 9. Extract ────────────────────────────────────────────────────
	rawHTML, err := sess.HTML(ctx)
	if err != nil {
		return nil, categorizeError(err, "failed to read results page")
	}

	res, err := s.extractor.Extract(rawHTML)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeExtraction, "failed to parse results page", err)
	}
	slog.Debug("results extracted",
		"listings", len(res.Listings),
		"cards", res.Matches.Cards,
		"titles", res.Matches.Titles,
		"companies", res.Matches.Companies,
		"locations", res.Matches.Locations,
	)
	return res.Listings, nil
}

// waitClickable waits for selector with the clickable timeout applied.
func (s *Scraper) waitClickable(ctx context.Context, sess Session, selector string) (Element, error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.searchCfg.ClickableTimeout)
	defer cancel()

	el, err := sess.WaitClickable(waitCtx, selector)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", selector, err)
	}
	return el, nil
}

func (s *Scraper) clickWhenReady(ctx context.Context, sess Session, selector string) error {
	el, err := s.waitClickable(ctx, sess, selector)
	if err != nil {
		return err
	}
	return s.activate(ctx, el)
}

// activate clicks el using the mode its probe reports. A native click runs
// under the clickable timeout; if it fails (an overlay appeared after the
// probe, or the node was re-rendered) the click is retried from script.
func (s *Scraper) activate(ctx context.Context, el Element) error {
	mode, err := el.Probe(ctx)
	switch mode {
	case ClickDirect:
		clickCtx, cancel := context.WithTimeout(ctx, s.searchCfg.ClickableTimeout)
		err := el.Click(clickCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		slog.Debug("native click failed, clicking from script", "error", err)
		return el.ForceClick(ctx)
	case ClickForced:
		slog.Debug("element is intercepted, clicking from script")
		return el.ForceClick(ctx)
	default:
		if err == nil {
			err = errors.New("element is not clickable")
		}
		return err
	}
}

// settle waits until the first result is on the page or the settle timeout
// elapses. Running out of time is not an error: extraction then sees
// whatever has rendered, which is usually the empty state.
func (s *Scraper) settle(ctx context.Context, sess Session) {
	selector := s.searchCfg.TitleSelector
	if s.searchCfg.CardSelector != "" {
		selector = s.searchCfg.CardSelector
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.searchCfg.SettleTimeout)
	defer cancel()

	start := time.Now()
	if err := sess.WaitForAny(waitCtx, selector); err != nil {
		slog.Debug("no results within settle window, extracting current page",
			"selector", selector,
			"waited", time.Since(start),
			"error", err,
		)
		return
	}
	slog.Debug("results rendered", "selector", selector, "waited", time.Since(start))
}

// categorizeError wraps raw errors into typed ScrapeErrors so the API layer
// can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "search canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}

// asScrapeError keeps an existing ScrapeError or wraps err with code.
func asScrapeError(err error, code, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	return models.NewScrapeError(code, msg, err)
}
