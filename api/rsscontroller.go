package api

import (
	"net/http"

	"lipu/library"

	"github.com/gin-gonic/gin"
)

// RegisterRSSRoutes registers RSS-related endpoints.
func RegisterRSSRoutes(r *gin.Engine, lib *library.Library) {
	g := r.Group("/api/rss")
	g.POST("/refresh", func(c *gin.Context) { handleRSSRefresh(c, lib) })
}

// handleRSSRefresh runs a refresh and answers with the merged, sorted articles.
// A refresh that is already running is reported as a conflict.
func handleRSSRefresh(c *gin.Context, lib *library.Library) {
	event, err := lib.TryRefresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refresh":  event,
		"articles": newViews(lib, lib.List()),
	})
}
