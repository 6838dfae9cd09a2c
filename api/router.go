package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jobscout/api/handler"
	"github.com/use-agent/jobscout/api/middleware"
	"github.com/use-agent/jobscout/config"
	"github.com/use-agent/jobscout/render"
)

// SearchService is what the routes need from the scraper.
type SearchService interface {
	handler.Searcher
	handler.StatsProvider
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled)
//
// The HTML form pages and the health endpoint sit outside auth.
func NewRouter(svc SearchService, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.SetHTMLTemplate(render.Templates())

	// Browser UI
	r.GET("/", handler.Index())
	r.POST("/search", handler.SearchPage(svc))

	v1 := r.Group("/api/v1")

	// Health: no auth required.
	v1.GET("/health", handler.Health(svc, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}

	protected.POST("/search", handler.Search(svc))

	return r
}
