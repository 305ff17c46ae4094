package api

import (
	"errors"
	"log"
	"net/http"

	"lipu/library"
	"lipu/render"
	"lipu/types"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(lib *library.Library) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r, lib)
	RegisterFeedRoutes(r, lib)
	RegisterRSSRoutes(r, lib)
	RegisterArticleRoutes(r, lib)
	RegisterTagRoutes(r, lib)
	return r
}

// statusFor maps library errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, library.ErrArticleNotFound),
		errors.Is(err, library.ErrFeedNotFound),
		errors.Is(err, library.ErrTagNotFound):
		return http.StatusNotFound
	case errors.Is(err, library.ErrInvalidFeed),
		errors.Is(err, library.ErrInvalidTag),
		errors.Is(err, library.ErrNotDownloadable):
		return http.StatusBadRequest
	case errors.Is(err, library.ErrRefreshRunning):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ API Error: %s %s - %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func newView(lib *library.Library, a types.Article) types.ArticleView {
	return types.ArticleView{Article: a, Display: render.Line(a), Tags: lib.TagsOf(a.ID)}
}

func newViews(lib *library.Library, articles []types.Article) []types.ArticleView {
	views := make([]types.ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, newView(lib, a))
	}
	return views
}
