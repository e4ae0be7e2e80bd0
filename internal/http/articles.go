package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"newsdesk/internal/apperr"
	"newsdesk/internal/domain"
	"newsdesk/internal/service"
)

type createArticleRequest struct {
	Title    string `json:"title" binding:"required,max=300"`
	Content  string `json:"content"`
	Category string `json:"category" binding:"max=100"`
	URL      string `json:"url" binding:"max=2048"`
	Source   string `json:"source" binding:"max=200"`
}

type updateArticleRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=300"`
	Content  *string `json:"content"`
	Category *string `json:"category" binding:"omitempty,max=100"`
	URL      *string `json:"url" binding:"omitempty,max=2048"`
	Source   *string `json:"source" binding:"omitempty,max=200"`
}

type ArticleResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (h *Handler) listArticles(c *gin.Context) {
	articles, err := h.articles.List(c.Request.Context(), domain.ArticleFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(articles, func(a domain.Article, _ int) ArticleResponse {
		return toArticleResponse(&a)
	}))
}

func (h *Handler) createArticle(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		h.respondError(c, apperr.Authentication("not authenticated"))
		return
	}

	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	article, err := h.articles.Create(c.Request.Context(), identity, service.ArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		URL:      req.URL,
		Source:   req.Source,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toArticleResponse(article))
}

func (h *Handler) updateArticle(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		h.respondError(c, apperr.Authentication("not authenticated"))
		return
	}

	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	article, err := h.articles.Update(c.Request.Context(), identity, c.Param("id"), domain.ArticlePatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		URL:      req.URL,
		Source:   req.Source,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toArticleResponse(article))
}

func (h *Handler) deleteArticle(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		h.respondError(c, apperr.Authentication("not authenticated"))
		return
	}

	if err := h.articles.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		URL:       a.URL,
		Source:    a.Source,
		Author:    a.Author,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
