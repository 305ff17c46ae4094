package api

import (
	"net/http"

	"lipu/library"
	"lipu/render"
	"lipu/types"

	"github.com/gin-gonic/gin"
)

type articlesController struct {
	lib *library.Library
}

// RegisterArticleRoutes registers article-related routes.
func RegisterArticleRoutes(r *gin.Engine, lib *library.Library) {
	ac := &articlesController{lib: lib}
	g := r.Group("/api/articles")
	g.GET("", ac.list)
	g.GET("/:id", ac.get)
	g.GET("/:id/text", ac.text)
	g.PUT("/:id/progress", ac.setProgress)
	g.POST("/:id/download", ac.download)
	g.POST("/:id/tags", ac.addTag)
	g.DELETE("/:id/tags/:tag", ac.removeTag)
}

// list serves GET /api/articles, optionally filtered by ?q= or ?tag=.
func (ac *articlesController) list(c *gin.Context) {
	var articles []types.Article
	if tag := c.Query("tag"); tag != "" {
		tagged, err := ac.lib.WithTag(tag)
		if err != nil {
			respondError(c, err)
			return
		}
		articles = tagged
	} else {
		articles = ac.lib.Search(c.Query("q"))
	}
	c.JSON(http.StatusOK, gin.H{"articles": newViews(ac.lib, articles)})
}

func (ac *articlesController) get(c *gin.Context) {
	a, err := ac.lib.Load(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newView(ac.lib, a))
}

// text serves the readable text of a text body.
func (ac *articlesController) text(c *gin.Context) {
	a, err := ac.lib.Load(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	body, ok := a.Body.(types.Text)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article has no text body"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": a.ID, "name": a.Name, "text": render.PlainText(body.Content, a.Link)})
}

func (ac *articlesController) setProgress(c *gin.Context) {
	var p types.Progress
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := ac.lib.SetViewingProgress(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newView(ac.lib, a))
}

func (ac *articlesController) download(c *gin.Context) {
	a, path, err := ac.lib.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": newView(ac.lib, a), "path": path})
}

// TagRequest represents the request to tag an article
type TagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

func (ac *articlesController) addTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	if err := ac.lib.AddTag(c.Request.Context(), id, req.Tag); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "tags": ac.lib.TagsOf(id)})
}

func (ac *articlesController) removeTag(c *gin.Context) {
	id := c.Param("id")
	if err := ac.lib.RemoveTag(c.Request.Context(), id, c.Param("tag")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "tags": ac.lib.TagsOf(id)})
}
