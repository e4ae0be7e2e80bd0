package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/domain"
	"newsdesk/internal/repository"
)

var createArticlesSchema = []string{`
CREATE TABLE IF NOT EXISTS articles (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);`,
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at);`,
}

const selectArticleColumns = `
SELECT id, title, content, category, url, source, author, created_at, updated_at
FROM articles`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	for _, stmt := range createArticlesSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create articles schema: %w", err)
		}
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (string, error) {
	now := time.Now().UTC()
	article.ID = uuid.NewString()
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO articles (id, title, content, category, url, source, author, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.Title,
		article.Content,
		article.Category,
		article.URL,
		article.Source,
		article.Author,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		article.ID = ""
		if isForeignKeyViolation(err) {
			return "", fmt.Errorf("insert article: author: %w", repository.ErrNotFound)
		}
		return "", fmt.Errorf("insert article: %w", err)
	}
	return article.ID, nil
}

func (r *ArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, selectArticleColumns+`
WHERE id=?`,
		id,
	)
	return scanArticle(row)
}

func (r *ArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Search != "" {
		clauses = append(clauses, `ulower(title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}
	if filter.Category != "" {
		clauses = append(clauses, `category = ?`)
		args = append(args, filter.Category)
	}

	query := selectArticleColumns
	if len(clauses) > 0 {
		query += "\nWHERE " + strings.Join(clauses, " AND ")
	}
	query += "\nORDER BY created_at DESC, rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}

	return articles, rows.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	article, err := scanArticle(tx.QueryRowContext(ctx, selectArticleColumns+`
WHERE id=?`, id))
	if err != nil {
		return nil, err
	}

	patch.Apply(article)
	article.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
UPDATE articles
SET title=?, content=?, category=?, url=?, source=?, updated_at=?
WHERE id=?`,
		article.Title,
		article.Content,
		article.Category,
		article.URL,
		article.Source,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit article update: %w", err)
	}
	return article, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id=?`, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("article delete rows affected: %w", err)
	}
	return aff > 0, nil
}

func scanArticle(scanner interface {
	Scan(dest ...any) error
}) (*domain.Article, error) {
	var (
		article   domain.Article
		createdAt time.Time
		updatedAt time.Time
	)
	if err := scanner.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Category,
		&article.URL,
		&article.Source,
		&article.Author,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	article.CreatedAt = createdAt.UTC()
	article.UpdatedAt = updatedAt.UTC()
	return &article, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
