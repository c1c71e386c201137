package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

const articleColumns = `id, title, subtitle, excerpt, content, cover_image, category, author, tags,
	published, published_date, reading_time, views, created_date, updated_date`

const listOrder = ` ORDER BY published_date DESC NULLS LAST, created_date DESC`

// sqlArticleRepo is the concrete implementation of ArticleRepository for postgres and sqlite
type sqlArticleRepo struct {
	db *database.DB
	// lower is the SQL function that lowercases text the same way strings.ToLower does
	lower string
	// tagMatch tests whether any element of the JSON tags column matches a LIKE pattern
	tagMatch string
}

// NewSQLArticleRepo creates a new SQL article repository
func NewSQLArticleRepo(db *database.DB) ArticleRepository {
	r := &sqlArticleRepo{db: db}
	if db.IsPostgres() {
		r.lower = "LOWER"
		r.tagMatch = `EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE LOWER(tag) LIKE ? ESCAPE '\')`
	} else {
		r.lower = database.SQLiteLowerFunc
		r.tagMatch = `EXISTS (SELECT 1 FROM json_each(articles.tags) WHERE ` + r.lower + `(json_each.value) LIKE ? ESCAPE '\')`
	}
	return r
}

// Create inserts a new article and assigns its ID
func (r *sqlArticleRepo) Create(ctx context.Context, article *models.Article) error {
	article.ID = uuid.New().String()
	if article.Tags == nil {
		article.Tags = models.Tags{}
	}

	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES (:id, :title, :subtitle, :excerpt, :content, :cover_image, :category, :author, :tags,
			:published, :published_date, :reading_time, :views, :created_date, :updated_date)
	`
	_, err := r.db.NamedExecContext(ctx, query, article)
	return err
}

// GetByID retrieves an article by ID
func (r *sqlArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	id, ok := normalizeID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var article models.Article
	query := r.db.Rebind(`SELECT ` + articleColumns + ` FROM articles WHERE id = ?`)
	err := r.db.GetContext(ctx, &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUTC(&article), nil
}

// Update replaces every mutable field of an existing article.
// The view counter is left to IncrementViews.
func (r *sqlArticleRepo) Update(ctx context.Context, article *models.Article) error {
	id, ok := normalizeID(article.ID)
	if !ok {
		return ErrNotFound
	}
	article.ID = id

	query := `
		UPDATE articles SET
			title = :title, subtitle = :subtitle, excerpt = :excerpt, content = :content,
			cover_image = :cover_image, category = :category, author = :author, tags = :tags,
			published = :published, published_date = :published_date, reading_time = :reading_time,
			updated_date = :updated_date
		WHERE id = :id
	`
	res, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete hard-removes an article
func (r *sqlArticleRepo) Delete(ctx context.Context, id string) error {
	id, ok := normalizeID(id)
	if !ok {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM articles WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// IncrementViews adds one to the view counter in a single statement
func (r *sqlArticleRepo) IncrementViews(ctx context.Context, id string) error {
	id, ok := normalizeID(id)
	if !ok {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE articles SET views = views + 1 WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// List returns one page of matching articles and the total match count
func (r *sqlArticleRepo) List(ctx context.Context, q ArticleQuery) ([]*models.Article, int, error) {
	where, args := r.buildWhere(q)

	var total int
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM articles` + where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + articleColumns + ` FROM articles` + where + listOrder
	if q.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.Limit, q.Offset)
	}

	articles := []*models.Article{}
	if err := r.db.SelectContext(ctx, &articles, r.db.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	for _, a := range articles {
		toUTC(a)
	}
	return articles, total, nil
}

// buildWhere translates query parameters into a WHERE clause with ? placeholders
func (r *sqlArticleRepo) buildWhere(q ArticleQuery) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)

	if q.Published != nil {
		clauses = append(clauses, `published = ?`)
		args = append(args, *q.Published)
	}

	if q.HasCategory() {
		clauses = append(clauses, `category = ?`)
		args = append(args, q.Category)
	}

	if q.Search != "" {
		pattern := likePattern(q.Search)
		clauses = append(clauses, `(`+r.lower+`(title) LIKE ? ESCAPE '\' OR `+r.lower+`(subtitle) LIKE ? ESCAPE '\' OR `+r.tagMatch+`)`)
		args = append(args, pattern, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return ` WHERE ` + strings.Join(clauses, ` AND `), args
}

// Stats counts articles by publish state and category
func (r *sqlArticleRepo) Stats(ctx context.Context) (*models.ArticleStats, error) {
	var counts struct {
		Total     int `db:"total"`
		Published int `db:"published"`
	}
	err := r.db.GetContext(ctx, &counts, `
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN published THEN 1 ELSE 0 END), 0) AS published
		FROM articles
	`)
	if err != nil {
		return nil, err
	}

	categories := []models.CategoryCount{}
	err = r.db.SelectContext(ctx, &categories, `
		SELECT category, COUNT(*) AS count FROM articles GROUP BY category ORDER BY category
	`)
	if err != nil {
		return nil, err
	}

	return &models.ArticleStats{
		Total:         counts.Total,
		Published:     counts.Published,
		Drafts:        counts.Total - counts.Published,
		CategoryStats: categories,
	}, nil
}

// StreamAll streams all articles in creation order
func (r *sqlArticleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	rows, err := r.db.QueryxContext(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY created_date`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var article models.Article
		if err := rows.StructScan(&article); err != nil {
			return err
		}
		if err := callback(toUTC(&article)); err != nil {
			return err
		}
	}

	return rows.Err()
}

// toUTC reports timestamps in UTC whatever the session time zone
func toUTC(a *models.Article) *models.Article {
	a.CreatedDate = a.CreatedDate.UTC()
	a.UpdatedDate = a.UpdatedDate.UTC()
	if a.PublishedDate != nil {
		published := a.PublishedDate.UTC()
		a.PublishedDate = &published
	}
	return a
}

// likePattern lowercases the search text, escapes LIKE wildcards and wraps it for substring matching
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(search))
	return "%" + escaped + "%"
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeID returns the canonical form of a UUID identifier
func normalizeID(s string) (string, bool) {
	if len(s) != 36 {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
