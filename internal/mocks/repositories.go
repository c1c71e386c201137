package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	mu       sync.Mutex
	Articles map[string]*models.Article
	nextID   int

	// Err, when set, is returned by every operation
	Err            error
	UpdateCalls    int
	IncrementCalls int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

// clone copies an article so callers never share the stored value
func clone(a *models.Article) *models.Article {
	c := *a
	c.Tags = append(models.Tags{}, a.Tags...)
	if a.CoverImage != nil {
		v := *a.CoverImage
		c.CoverImage = &v
	}
	if a.PublishedDate != nil {
		v := *a.PublishedDate
		c.PublishedDate = &v
	}
	return &c
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	article.ID = fmt.Sprintf("article-%d", m.nextID)
	if article.Tags == nil {
		article.Tags = models.Tags{}
	}
	m.Articles[article.ID] = clone(article)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(a), nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.Articles[article.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := clone(article)
	updated.Views = existing.Views
	m.Articles[article.ID] = updated
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IncrementCalls++
	if m.Err != nil {
		return m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Views++
	return nil
}

func (m *MockArticleRepository) List(ctx context.Context, q repository.ArticleQuery) ([]*models.Article, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}

	var matched []*models.Article
	for _, a := range m.Articles {
		if matches(a, q) {
			matched = append(matched, clone(a))
		}
	}
	sortListing(matched)

	total := len(matched)
	if q.Limit > 0 {
		start := q.Offset
		if start > total {
			start = total
		}
		end := start + q.Limit
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}

	out := make([]*models.Article, 0, len(matched))
	out = append(out, matched...)
	return out, total, nil
}

func matches(a *models.Article, q repository.ArticleQuery) bool {
	if q.Published != nil && a.Published != *q.Published {
		return false
	}
	if q.HasCategory() && string(a.Category) != q.Category {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if strings.Contains(strings.ToLower(a.Title), needle) || strings.Contains(strings.ToLower(a.Subtitle), needle) {
			return true
		}
		for _, tag := range a.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	}
	return true
}

// sortListing orders by published_date desc with unpublished last, then created_date desc
func sortListing(articles []*models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		switch {
		case a.PublishedDate != nil && b.PublishedDate == nil:
			return true
		case a.PublishedDate == nil && b.PublishedDate != nil:
			return false
		case a.PublishedDate != nil && !a.PublishedDate.Equal(*b.PublishedDate):
			return a.PublishedDate.After(*b.PublishedDate)
		}
		return a.CreatedDate.After(b.CreatedDate)
	})
}

func (m *MockArticleRepository) Stats(ctx context.Context) (*models.ArticleStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	stats := &models.ArticleStats{CategoryStats: []models.CategoryCount{}}
	counts := map[models.Category]int{}
	for _, a := range m.Articles {
		stats.Total++
		if a.Published {
			stats.Published++
		}
		counts[a.Category]++
	}
	stats.Drafts = stats.Total - stats.Published

	for category, count := range counts {
		stats.CategoryStats = append(stats.CategoryStats, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(stats.CategoryStats, func(i, j int) bool {
		return stats.CategoryStats[i].Category < stats.CategoryStats[j].Category
	})
	return stats, nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	m.mu.Lock()
	all := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		all = append(all, clone(a))
	}
	err := m.Err
	m.mu.Unlock()

	if err != nil {
		return err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedDate.Before(all[j].CreatedDate)
	})
	for _, a := range all {
		if err := callback(a); err != nil {
			return err
		}
	}
	return nil
}
