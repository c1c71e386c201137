package service

import (
	"context"
	"strings"
	"time"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/personal-blog-api/internal/validation"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repo          repository.ArticleRepository
	defaultAuthor string
	now           func() time.Time
}

// ArticleOption customizes an article service
type ArticleOption func(*articleService)

// WithClock replaces the wall clock used for timestamps
func WithClock(now func() time.Time) ArticleOption {
	return func(s *articleService) {
		s.now = now
	}
}

// NewArticleService creates a new ArticleService
func NewArticleService(repo repository.ArticleRepository, defaultAuthor string, opts ...ArticleOption) ArticleService {
	s := &articleService{
		repo:          repo,
		defaultAuthor: defaultAuthor,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp returns the current time as stored: UTC, millisecond precision
func (s *articleService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// List returns one page of articles matching params
func (s *articleService) List(ctx context.Context, params ListParams) (*models.ArticleList, error) {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	articles, total, err := s.repo.List(ctx, repository.ArticleQuery{
		Published: params.Published,
		Category:  params.Category,
		Search:    strings.TrimSpace(params.Search),
		Offset:    (page - 1) * limit,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return &models.ArticleList{
		Articles:    articles,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		Total:       total,
	}, nil
}

// ListPublished returns every published article, newest first
func (s *articleService) ListPublished(ctx context.Context) ([]*models.Article, error) {
	published := true
	articles, _, err := s.repo.List(ctx, repository.ArticleQuery{Published: &published})
	return articles, err
}

// ListByCategory returns every published article in category, newest first
func (s *articleService) ListByCategory(ctx context.Context, category string) ([]*models.Article, error) {
	if category == models.CategoryAll {
		return s.ListPublished(ctx)
	}
	if !validation.IsValidCategory(category) {
		return nil, validation.Errors{{
			Field:   "category",
			Message: "Invalid category",
			Value:   category,
		}}
	}

	published := true
	articles, _, err := s.repo.List(ctx, repository.ArticleQuery{
		Published: &published,
		Category:  category,
	})
	return articles, err
}

// Get returns an article. Reading a published article counts as one view.
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.Published {
		if err := s.repo.IncrementViews(ctx, article.ID); err != nil {
			return nil, err
		}
		article.Views++
	}

	return article, nil
}

// Create assembles, validates and stores a new article
func (s *articleService) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	now := s.timestamp()

	category := input.Category
	if category == "" {
		category = models.DefaultCategory
	}
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = s.defaultAuthor
	}

	article := &models.Article{
		Title:       strings.TrimSpace(input.Title),
		Subtitle:    strings.TrimSpace(input.Subtitle),
		Excerpt:     strings.TrimSpace(input.Excerpt),
		Content:     input.Content,
		CoverImage:  normalizeCoverImage(input.CoverImage),
		Category:    category,
		Author:      author,
		Tags:        models.NormalizeTags(input.Tags),
		Published:   input.Published,
		CreatedDate: now,
		UpdatedDate: now,
	}

	if errs := validation.ValidateArticle(article); len(errs) > 0 {
		return nil, errs
	}

	article.ReadingTime = models.ReadingTime(article.Content)

	switch {
	case input.PublishedDate != nil:
		published := input.PublishedDate.UTC().Truncate(time.Millisecond)
		article.PublishedDate = &published
	case article.Published:
		article.PublishedDate = &now
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Update applies a partial change to an existing article.
// published_date is stamped once, on the first transition to published, and never cleared.
func (s *articleService) Update(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	wasPublished := article.Published

	if patch.Title != nil {
		article.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Subtitle != nil {
		article.Subtitle = strings.TrimSpace(*patch.Subtitle)
	}
	if patch.Excerpt != nil {
		article.Excerpt = strings.TrimSpace(*patch.Excerpt)
	}
	if patch.CoverImage != nil {
		article.CoverImage = normalizeCoverImage(patch.CoverImage)
	}
	if patch.Category != nil {
		article.Category = *patch.Category
	}
	if patch.Author != nil {
		article.Author = strings.TrimSpace(*patch.Author)
	}
	if patch.Tags != nil {
		article.Tags = models.NormalizeTags(*patch.Tags)
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.Published != nil {
		article.Published = *patch.Published
		if article.Published && !wasPublished && article.PublishedDate == nil {
			article.PublishedDate = &now
		}
	}
	article.UpdatedDate = now

	if errs := validation.ValidateArticle(article); len(errs) > 0 {
		return nil, errs
	}

	if patch.Content != nil {
		article.ReadingTime = models.ReadingTime(article.Content)
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete hard-removes an article
func (s *articleService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats returns fresh collection counts
func (s *articleService) Stats(ctx context.Context) (*models.ArticleStats, error) {
	return s.repo.Stats(ctx)
}

// normalizeCoverImage maps a blank image to none
func normalizeCoverImage(image *string) *string {
	if image == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*image)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
