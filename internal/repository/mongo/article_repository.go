package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"newsdesk/internal/domain"
	"newsdesk/internal/repository"
)

type articleDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content,omitempty"`
	Category  string        `bson:"category,omitempty"`
	URL       string        `bson:"url,omitempty"`
	Source    string        `bson:"source,omitempty"`
	Author    bson.ObjectID `bson:"author"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d articleDocument) toDomain() domain.Article {
	return domain.Article{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		URL:       d.URL,
		Source:    d.Source,
		Author:    d.Author.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) repository.ArticleRepository {
	return &ArticleRepository{coll: db.Collection("articles")}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create articles indexes: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (string, error) {
	author, err := parseID(article.Author)
	if err != nil {
		return "", fmt.Errorf("insert article: author: %w", repository.ErrNotFound)
	}

	now := time.Now().UTC()
	doc := articleDocument{
		ID:        bson.NewObjectID(),
		Title:     article.Title,
		Content:   article.Content,
		Category:  article.Category,
		URL:       article.URL,
		Source:    article.Source,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert article: %w", err)
	}

	article.ID = doc.ID.Hex()
	article.CreatedAt = now
	article.UpdatedAt = now
	return article.ID, nil
}

func (r *ArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc articleDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	article := doc.toDomain()
	return &article, nil
}

func (r *ArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	cursor, err := r.coll.Find(ctx, listFilter(filter),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}

	var docs []articleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	articles := make([]domain.Article, 0, len(docs))
	for _, doc := range docs {
		articles = append(articles, doc.toDomain())
	}
	return articles, nil
}

func (r *ArticleRepository) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc articleDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patchSet(patch, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	article := doc.toDomain()
	return &article, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// listFilter matches the title as a literal, case-insensitive substring.
func listFilter(filter domain.ArticleFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	return query
}

func patchSet(patch domain.ArticlePatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.URL != nil {
		set["url"] = *patch.URL
	}
	if patch.Source != nil {
		set["source"] = *patch.Source
	}
	return set
}
