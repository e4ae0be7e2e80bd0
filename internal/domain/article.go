package domain

import "time"

// Article is a user-authored article. Author holds the creating user's ID.
type Article struct {
	ID        string
	Title     string
	Content   string
	Category  string
	URL       string
	Source    string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticlePatch carries a partial update; nil fields are left untouched.
type ArticlePatch struct {
	Title    *string
	Content  *string
	Category *string
	URL      *string
	Source   *string
}

// Empty reports whether the patch changes nothing.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil && p.URL == nil && p.Source == nil
}

// Apply copies the provided fields onto a.
func (p ArticlePatch) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.URL != nil {
		a.URL = *p.URL
	}
	if p.Source != nil {
		a.Source = *p.Source
	}
}

// ArticleFilter narrows a listing. Empty fields impose no constraint.
type ArticleFilter struct {
	Search   string
	Category string
}
