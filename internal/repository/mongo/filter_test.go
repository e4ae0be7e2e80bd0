package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"newsdesk/internal/domain"
	"newsdesk/internal/repository"
)

func TestListFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.ArticleFilter
		want   bson.M
	}{
		{name: "no constraint", filter: domain.ArticleFilter{}, want: bson.M{}},
		{
			name:   "search is quoted",
			filter: domain.ArticleFilter{Search: "c++ (beta)"},
			want:   bson.M{"title": bson.M{"$regex": `c\+\+ \(beta\)`, "$options": "i"}},
		},
		{
			name:   "search and category",
			filter: domain.ArticleFilter{Search: "tech", Category: "science"},
			want: bson.M{
				"title":    bson.M{"$regex": "tech", "$options": "i"},
				"category": "science",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listFilter(tt.filter))
		})
	}
}

func TestPatchSet(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	title := "New"
	empty := ""

	set := patchSet(domain.ArticlePatch{Title: &title, Source: &empty}, now)
	assert.Equal(t, bson.M{"title": "New", "source": "", "updatedAt": now}, set)
}

func TestParseID(t *testing.T) {
	oid := bson.NewObjectID()
	got, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = parseID("not-hex")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestEmailLookupOptions(t *testing.T) {
	var opts options.FindOneOptions
	for _, apply := range emailLookupOptions().List() {
		require.NoError(t, apply(&opts))
	}

	require.NotNil(t, opts.Collation)
	assert.Equal(t, "en", opts.Collation.Locale)
	assert.Equal(t, 2, opts.Collation.Strength)
}
