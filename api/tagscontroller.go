package api

import (
	"net/http"

	"lipu/library"

	"github.com/gin-gonic/gin"
)

// RegisterTagRoutes registers tag-wide endpoints.
func RegisterTagRoutes(r *gin.Engine, lib *library.Library) {
	g := r.Group("/api/tags")
	g.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tags": lib.Tags()})
	})
	g.DELETE("/:tag", func(c *gin.Context) {
		if err := lib.DropTag(c.Request.Context(), c.Param("tag")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tags": lib.Tags()})
	})
}
