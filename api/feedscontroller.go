package api

import (
	"net/http"
	"strings"

	"lipu/library"

	"github.com/gin-gonic/gin"
)

// AddFeedRequest names a feed in exactly one of its supported forms.
type AddFeedRequest struct {
	URL            string           `json:"url"`
	Preset         string           `json:"preset"`
	Mastodon       *MastodonAccount `json:"mastodon"`
	YouTubeChannel string           `json:"youtube_channel"`
}

type MastodonAccount struct {
	Instance string `json:"instance"`
	User     string `json:"user"`
}

type feedsController struct {
	lib *library.Library
}

// RegisterFeedRoutes registers subscription management endpoints.
func RegisterFeedRoutes(r *gin.Engine, lib *library.Library) {
	fc := &feedsController{lib: lib}
	g := r.Group("/api/feeds")
	g.GET("", fc.list)
	g.POST("", fc.add)
	g.DELETE("", fc.remove)
}

func (fc *feedsController) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"feeds": fc.lib.Feeds()})
}

func (fc *feedsController) add(c *gin.Context) {
	var req AddFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var (
		feedURL string
		err     error
	)
	switch {
	case req.Mastodon != nil:
		feedURL, err = fc.lib.AddMastodonFeed(ctx, req.Mastodon.Instance, req.Mastodon.User)
	case strings.TrimSpace(req.YouTubeChannel) != "":
		feedURL, err = fc.lib.AddYouTubeChannel(ctx, req.YouTubeChannel)
	case strings.TrimSpace(req.Preset) != "":
		feedURL, err = fc.lib.AddFeed(ctx, req.Preset)
	case strings.TrimSpace(req.URL) != "":
		feedURL, err = fc.lib.AddFeed(ctx, req.URL)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of url, preset, mastodon or youtube_channel is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": feedURL, "feeds": fc.lib.Feeds()})
}

func (fc *feedsController) remove(c *gin.Context) {
	feedURL := c.Query("url")
	if feedURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}
	if err := fc.lib.RemoveFeed(c.Request.Context(), feedURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeds": fc.lib.Feeds()})
}
