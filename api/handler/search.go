package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jobscout/models"
	"github.com/use-agent/jobscout/render"
)

// Searcher runs one job search. *scraper.Scraper implements it.
type Searcher interface {
	RunSearch(ctx context.Context, query string) ([]models.JobListing, error)
}

// Search returns a handler for POST /api/v1/search.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Searcher.RunSearch → listings   (records search_ms)
//  3. Render Markdown when format=markdown.
//  4. Fill Timing, return 200.
func Search(sc Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, req.Query, models.NewScrapeError(models.ErrCodeInvalidInput, err.Error(), err), models.TimingInfo{})
			return
		}
		req.Defaults()

		if models.IsBlankQuery(req.Query) {
			respondError(c, req.Query, models.NewScrapeError(models.ErrCodeInvalidInput, "query must not be blank", nil), models.TimingInfo{})
			return
		}

		// ── 2. Search ───────────────────────────────────────────────
		searchStart := time.Now()
		listings, err := sc.RunSearch(c.Request.Context(), req.Query)
		searchMs := time.Since(searchStart).Milliseconds()

		if err != nil {
			respondError(c, req.Query, err, models.TimingInfo{
				TotalMs:  time.Since(totalStart).Milliseconds(),
				SearchMs: searchMs,
			})
			return
		}
		if listings == nil {
			listings = []models.JobListing{}
		}

		resp := models.SearchResponse{
			Success:  true,
			Query:    req.Query,
			Count:    len(listings),
			Listings: listings,
		}

		// ── 3. Markdown ─────────────────────────────────────────────
		if req.Format == "markdown" {
			md, err := render.Markdown(listings)
			if err != nil {
				respondError(c, req.Query, models.NewScrapeError(models.ErrCodeInternal, "failed to render markdown", err), models.TimingInfo{
					TotalMs:  time.Since(totalStart).Milliseconds(),
					SearchMs: searchMs,
				})
				return
			}
			resp.Markdown = md
		}

		// ── 4. Timing and respond ───────────────────────────────────
		resp.Timing = models.TimingInfo{
			TotalMs:  time.Since(totalStart).Milliseconds(),
			SearchMs: searchMs,
		}
		c.JSON(http.StatusOK, resp)
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, query string, err error, timing models.TimingInfo) {
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(scrapeErr), models.SearchResponse{
		Success:  false,
		Query:    query,
		Listings: []models.JobListing{},
		Error:    scrapeErr.ToDetail(),
		Timing:   timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeBusy:
		return http.StatusServiceUnavailable // 503
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
