package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
)

// MockArticleService is a mock implementation of ArticleService.
// Unset funcs return zero values.
type MockArticleService struct {
	ListFunc           func(ctx context.Context, params service.ListParams) (*models.ArticleList, error)
	ListPublishedFunc  func(ctx context.Context) ([]*models.Article, error)
	ListByCategoryFunc func(ctx context.Context, category string) ([]*models.Article, error)
	GetFunc            func(ctx context.Context, id string) (*models.Article, error)
	CreateFunc         func(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	UpdateFunc         func(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error)
	DeleteFunc         func(ctx context.Context, id string) error
	StatsFunc          func(ctx context.Context) (*models.ArticleStats, error)
	ExportFunc         func(ctx context.Context, w io.Writer, format string) (int, error)

	LastListParams service.ListParams
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{}
}

func (m *MockArticleService) List(ctx context.Context, params service.ListParams) (*models.ArticleList, error) {
	m.LastListParams = params
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return &models.ArticleList{Articles: []*models.Article{}, CurrentPage: params.Page}, nil
}

func (m *MockArticleService) ListPublished(ctx context.Context) ([]*models.Article, error) {
	if m.ListPublishedFunc != nil {
		return m.ListPublishedFunc(ctx)
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) ListByCategory(ctx context.Context, category string) ([]*models.Article, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, category)
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) Get(ctx context.Context, id string) (*models.Article, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &models.Article{ID: id}, nil
}

func (m *MockArticleService) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	return &models.Article{ID: "article-1", Title: input.Title}, nil
}

func (m *MockArticleService) Update(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return &models.Article{ID: id}, nil
}

func (m *MockArticleService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockArticleService) Stats(ctx context.Context) (*models.ArticleStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &models.ArticleStats{CategoryStats: []models.CategoryCount{}}, nil
}

func (m *MockArticleService) Export(ctx context.Context, w io.Writer, format string) (int, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, w, format)
	}
	return 0, nil
}

// MockMailer is a mock implementation of mail.Sender that records what it was asked to send
type MockMailer struct {
	mu        sync.Mutex
	Sent      []*mail.Message
	SendError error
	MessageID string
}

// Verify interface compliance
var _ mail.Sender = (*MockMailer)(nil)

func NewMockMailer() *MockMailer {
	return &MockMailer{MessageID: "<test-message@example.com>"}
}

func (m *MockMailer) Send(ctx context.Context, msg *mail.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendError != nil {
		return "", m.SendError
	}
	m.Sent = append(m.Sent, msg)
	return m.MessageID, nil
}

// MockHealthChecker is a mock store health probe
type MockHealthChecker struct {
	Err error
}

// Verify interface compliance
var _ service.HealthChecker = (*MockHealthChecker)(nil)

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
