package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsdesk/internal/apperr"
	"newsdesk/internal/auth"
	"newsdesk/internal/domain"
	"newsdesk/internal/repository"
)

// ArticleInput holds the caller-controlled fields of a new article.
type ArticleInput struct {
	Title    string
	Content  string
	Category string
	URL      string
	Source   string
}

// ArticleOptions toggles optional policy.
type ArticleOptions struct {
	// EnforceOwnership limits update and delete to the author or an admin.
	EnforceOwnership bool
}

// ArticleService coordinates article operations backed by repositories.
type ArticleService interface {
	Create(ctx context.Context, actor auth.Identity, input ArticleInput) (*domain.Article, error)
	List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	Update(ctx context.Context, actor auth.Identity, id string, patch domain.ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
}

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	opts     ArticleOptions
}

func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, opts ArticleOptions) ArticleService {
	return &articleService{
		articles: articles,
		users:    users,
		opts:     opts,
	}
}

func (s *articleService) Create(ctx context.Context, actor auth.Identity, input ArticleInput) (*domain.Article, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("title", "title is required")
	}

	if _, err := s.users.GetByID(ctx, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, apperr.Authentication("account no longer exists")
		}
		return nil, fmt.Errorf("lookup author: %w", err)
	}

	article := &domain.Article{
		Title:    title,
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
		URL:      strings.TrimSpace(input.URL),
		Source:   strings.TrimSpace(input.Source),
		Author:   actor.ID,
	}
	if _, err := s.articles.Create(ctx, article); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Authentication("account no longer exists")
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.articles.List(ctx, filter)
}

func (s *articleService) Update(ctx context.Context, actor auth.Identity, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.Validation("title", "title cannot be empty")
		}
		patch.Title = &title
	}

	if s.opts.EnforceOwnership {
		if err := s.authorize(ctx, actor, id); err != nil {
			return nil, err
		}
	}

	// an empty patch leaves updated_at alone
	if patch.Empty() {
		article, err := s.articles.Get(ctx, id)
		if err != nil {
			return nil, articleError(err)
		}
		return article, nil
	}

	article, err := s.articles.Update(ctx, id, patch)
	if err != nil {
		return nil, articleError(err)
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if s.opts.EnforceOwnership {
		if err := s.authorize(ctx, actor, id); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil
			}
			return err
		}
	}

	if _, err := s.articles.Delete(ctx, id); err != nil {
		return articleError(err)
	}
	return nil
}

func (s *articleService) authorize(ctx context.Context, actor auth.Identity, id string) error {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return articleError(err)
	}
	if actor.IsAdmin || article.Author == actor.ID {
		return nil
	}
	return apperr.Forbidden("only the author can modify this article")
}

func articleError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("article not found")
	case errors.Is(err, repository.ErrInvalidID):
		return apperr.Validation("id", "invalid article id")
	default:
		return err
	}
}
