package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdesk/internal/news"
)

func (h *Handler) searchNews(c *gin.Context) {
	result, err := h.news.Search(c.Request.Context(), news.Query{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Lang:     c.Query("lang"),
		Max:      news.ParseMax(c.Query("max")),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) topHeadlines(c *gin.Context) {
	result, err := h.news.TopHeadlines(c.Request.Context(), news.Headlines{
		Lang:    c.Query("lang"),
		Country: c.Query("country"),
		Max:     news.ParseMax(c.Query("max")),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
