package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jobscout/models"
	"github.com/use-agent/jobscout/render"
)

// Index returns a handler for GET / that shows the empty search form.
func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, render.PageTemplate, render.View{})
	}
}

// SearchPage returns a handler for POST /search. The form field q carries
// the query. A blank query is answered with a warning and never reaches sc.
// Search failures are shown on the page, so the status is always 200.
func SearchPage(sc Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.PostForm("q")
		if models.IsBlankQuery(query) {
			c.HTML(http.StatusOK, render.PageTemplate, render.NewView(query, nil, nil))
			return
		}

		listings, err := sc.RunSearch(c.Request.Context(), query)
		c.HTML(http.StatusOK, render.PageTemplate, render.NewView(query, listings, err))
	}
}
