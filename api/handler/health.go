package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jobscout/models"
)

// StatsProvider reports browser session usage. *scraper.Scraper implements it.
type StatsProvider interface {
	Stats() models.SearchStats
}

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// Status is "busy" while every browser session slot is taken; new searches
// then queue behind the gate.
func Health(sp StatsProvider, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := sp.Stats()

		status := "healthy"
		if stats.MaxConcurrent > 0 && stats.InFlight >= stats.MaxConcurrent {
			status = "busy"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:      status,
			Uptime:      time.Since(startTime).Round(time.Second).String(),
			SearchStats: stats,
			Version:     Version,
		})
	}
}
