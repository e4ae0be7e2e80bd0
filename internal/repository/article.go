package repository

import (
	"context"

	"newsdesk/internal/domain"
)

// ArticleRepository exposes persistence operations for Article records.
type ArticleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, article *domain.Article) (string, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
