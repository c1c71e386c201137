package service

import (
	"context"
	"io"
	"time"

	"github.com/personal-blog-api/internal/auth"
	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
)

// Listing defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams is a listing request as received from a caller
type ListParams struct {
	Published *bool
	Category  string
	Search    string
	Page      int
	Limit     int
}

// ArticleService defines the interface for the article lifecycle
type ArticleService interface {
	List(ctx context.Context, params ListParams) (*models.ArticleList, error)
	ListPublished(ctx context.Context) ([]*models.Article, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.ArticleStats, error)
	Export(ctx context.Context, w io.Writer, format string) (int, error)
}

// LoginResult is the credential handed to a successfully authenticated admin
type LoginResult struct {
	Token     string
	Role      string
	ExpiresAt time.Time
}

// AdminService defines the interface for the admin session guard
type AdminService interface {
	Login(ctx context.Context, password string) (*LoginResult, error)
	Verify(token string) (*auth.Claims, error)
}

// ContactService defines the interface for the contact relay
type ContactService interface {
	Submit(ctx context.Context, submission *models.ContactSubmission) (string, error)
}

// HealthChecker reports whether the article store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Articles ArticleService
	Admin    AdminService
	Contact  ContactService
	Store    HealthChecker
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, store HealthChecker, mailer mail.Sender, cfg *config.Config) *Services {
	return &Services{
		Articles: NewArticleService(repos.Article, cfg.Blog.DefaultAuthor),
		Admin:    NewAdminService(cfg.Admin.Password, auth.NewTokenManager(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)),
		Contact:  NewContactService(mailer, cfg.Mail.User, cfg.Mail.ContactEmail),
		Store:    store,
	}
}
