package api

import (
	"net/http"

	"lipu/library"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes registers liveness and status endpoints.
func RegisterHealthRoutes(r *gin.Engine, lib *library.Library) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, lib.Status())
	})
}
