package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	errors   errorResponder
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, errs errorResponder, log zerolog.Logger) *ArticleHandler {
	l := log.With().Str("handler", "articles").Logger()
	errs.log = l
	return &ArticleHandler{
		services: services,
		errors:   errs,
		log:      l,
	}
}

// List handles GET /api/articles?published=&category=&search=&page=&limit=
func (h *ArticleHandler) List(c *gin.Context) {
	params, errs := parseListParams(c)
	if len(errs) > 0 {
		h.errors.respond(c, errs)
		return
	}

	list, err := h.services.Articles.List(c.Request.Context(), params)
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// parseListParams reads listing query parameters; present values must be well formed
func parseListParams(c *gin.Context) (service.ListParams, validation.Errors) {
	var (
		params = service.ListParams{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Page:     service.DefaultPage,
			Limit:    service.DefaultLimit,
		}
		errs validation.Errors
	)

	if raw, ok := c.GetQuery("published"); ok && raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, validation.ValidationError{Field: "published", Message: "published must be true or false", Value: raw})
		} else {
			params.Published = &published
		}
	}

	if raw, ok := c.GetQuery("page"); ok && raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, validation.ValidationError{Field: "page", Message: "page must be a positive integer", Value: raw})
		} else {
			params.Page = page
		}
	}

	if raw, ok := c.GetQuery("limit"); ok && raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			errs = append(errs, validation.ValidationError{Field: "limit", Message: "limit must be a positive integer", Value: raw})
		} else {
			params.Limit = limit
		}
	}

	return params, errs
}

// Stats handles GET /api/articles/stats
func (h *ArticleHandler) Stats(c *gin.Context) {
	stats, err := h.services.Articles.Stats(c.Request.Context())
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListPublished handles GET /api/articles/published
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	articles, err := h.services.Articles.ListPublished(c.Request.Context())
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

// ListByCategory handles GET /api/articles/category/:category
func (h *ArticleHandler) ListByCategory(c *gin.Context) {
	articles, err := h.services.Articles.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var input models.ArticleInput
	if !bindJSON(c, &input) {
		return
	}

	article, err := h.services.Articles.Create(c.Request.Context(), &input)
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	h.log.Info().Str("article_id", article.ID).Bool("published", article.Published).Msg("Article created")
	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var patch models.ArticlePatch
	if !bindJSON(c, &patch) {
		return
	}

	article, err := h.services.Articles.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	h.log.Info().Str("article_id", article.ID).Msg("Article updated")
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Articles.Delete(c.Request.Context(), id); err != nil {
		h.errors.respond(c, err)
		return
	}

	h.log.Info().Str("article_id", id).Msg("Article deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

// bindJSON decodes the request body into dst, answering 413 or 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
	return false
}
