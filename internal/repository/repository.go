package repository

import (
	"context"
	"errors"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

// ErrNotFound is returned when an identifier does not resolve to an article,
// including identifiers that are not well-formed for the store
var ErrNotFound = errors.New("article not found")

// ArticleQuery is a translated listing request
type ArticleQuery struct {
	Published *bool
	Category  string // empty or models.CategoryAll means any
	Search    string // case-insensitive substring of title, subtitle or a tag
	Offset    int
	Limit     int // 0 returns every match and ignores Offset
}

// HasCategory reports whether the query filters by category
func (q ArticleQuery) HasCategory() bool {
	return q.Category != "" && q.Category != models.CategoryAll
}

// ArticleRepository defines the interface for article data operations.
// Results are ordered by published_date descending (unpublished last),
// then created_date descending.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	List(ctx context.Context, query ArticleQuery) ([]*models.Article, int, error)
	Stats(ctx context.Context) (*models.ArticleStats, error)
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
}

// NewSQL creates all repositories over a postgres or sqlite connection
func NewSQL(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewSQLArticleRepo(db),
	}
}

// NewMongo creates all repositories over a MongoDB database
func NewMongo(m *database.Mongo) *Repositories {
	return &Repositories{
		Article: NewMongoArticleRepo(m.Articles()),
	}
}
