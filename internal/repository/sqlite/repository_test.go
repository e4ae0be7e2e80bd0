package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain"
	"newsdesk/internal/repository"
)

func newTestRepos(t *testing.T) (repository.UserRepository, repository.ArticleRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "newsdesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := NewUserRepository(db)
	articles := NewArticleRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, articles.Init(context.Background()))
	return users, articles
}

func createUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{Username: "reader", Email: email, PasswordHash: "hash"}
	_, err := users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestRepos(t)

	user := createUser(t, users, "a@x.com")
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.False(t, byEmail.IsAdmin)

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = users.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestRepos(t)

	first := createUser(t, users, "a@x.com")

	dup := &domain.User{Username: "other", Email: "a@x.com", PasswordHash: "other-hash"}
	_, err := users.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Empty(t, dup.ID)

	stored, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "reader", stored.Username)
	assert.Equal(t, "hash", stored.PasswordHash)
}

func TestUserRepository_SetAdmin(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestRepos(t)
	user := createUser(t, users, "a@x.com")

	require.NoError(t, users.SetAdmin(ctx, user.ID, true))
	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	assert.ErrorIs(t, users.SetAdmin(ctx, "nope", true), repository.ErrNotFound)
}

func TestArticleRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	users, articles := newTestRepos(t)
	author := createUser(t, users, "a@x.com")

	article := &domain.Article{Title: "Hello", Content: "body", Category: "science", Author: author.ID}
	id, err := articles.Create(ctx, article)
	require.NoError(t, err)
	assert.Equal(t, article.ID, id)

	got, err := articles.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, author.ID, got.Author)

	title := "Hello again"
	source := "wire"
	updated, err := articles.Update(ctx, id, domain.ArticlePatch{Title: &title, Source: &source})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "wire", updated.Source)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, "science", updated.Category)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	removed, err := articles.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = articles.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = articles.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArticleRepository_UpdateMissing(t *testing.T) {
	_, articles := newTestRepos(t)
	title := "x"

	_, err := articles.Update(context.Background(), "2b1e6a52-3a51-4d4b-9d0c-1f1f1f1f1f1f", domain.ArticlePatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = articles.Update(context.Background(), "not-an-id", domain.ArticlePatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestArticleRepository_CreateUnknownAuthor(t *testing.T) {
	_, articles := newTestRepos(t)

	_, err := articles.Create(context.Background(), &domain.Article{Title: "orphan", Author: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArticleRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	users, articles := newTestRepos(t)
	author := createUser(t, users, "a@x.com")

	seed := []domain.Article{
		{Title: "Tech giants report earnings", Category: "business"},
		{Title: "New biotech breakthrough", Category: "science"},
		{Title: "Football results", Category: "sports"},
		{Title: "Space telescope images", Category: "science"},
		{Title: "100% pure_luck", Category: "general"},
		{Title: "École ouverte", Category: "education"},
	}
	for i := range seed {
		seed[i].Author = author.ID
		_, err := articles.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	titles := func(list []domain.Article) []string {
		out := make([]string, len(list))
		for i := range list {
			out[i] = list[i].Title
		}
		return out
	}

	all, err := articles.List(ctx, domain.ArticleFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"École ouverte",
		"100% pure_luck",
		"Space telescope images",
		"Football results",
		"New biotech breakthrough",
		"Tech giants report earnings",
	}, titles(all))

	tech, err := articles.List(ctx, domain.ArticleFilter{Search: "TECH"})
	require.NoError(t, err)
	assert.Equal(t, []string{"New biotech breakthrough", "Tech giants report earnings"}, titles(tech))

	science, err := articles.List(ctx, domain.ArticleFilter{Category: "science"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Space telescope images", "New biotech breakthrough"}, titles(science))

	both, err := articles.List(ctx, domain.ArticleFilter{Search: "tech", Category: "science"})
	require.NoError(t, err)
	assert.Equal(t, []string{"New biotech breakthrough"}, titles(both))

	literal, err := articles.List(ctx, domain.ArticleFilter{Search: "0% pure_"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% pure_luck"}, titles(literal))

	for _, term := range []string{"école", "ÉCOLE", "École ouverte"} {
		accented, err := articles.List(ctx, domain.ArticleFilter{Search: term})
		require.NoError(t, err)
		assert.Equal(t, []string{"École ouverte"}, titles(accented), term)
	}

	wildcard, err := articles.List(ctx, domain.ArticleFilter{Search: "%"})
	require.NoError(t, err)
	assert.Len(t, wildcard, 1)

	none, err := articles.List(ctx, domain.ArticleFilter{Category: "Science"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
