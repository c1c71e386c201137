package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/personal-blog-api/internal/models"
)

func strPtr(s string) *string { return &s }

func validArticle() *models.Article {
	return &models.Article{
		Title:       "Getting started with Go",
		Subtitle:    "A short tour",
		Content:     "Go is a statically typed language.",
		Category:    models.CategoryTechnology,
		Author:      "Richard Li",
		Tags:        models.Tags{"go"},
		ReadingTime: 1,
	}
}

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(a *models.Article)
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid article",
			mutate:     func(a *models.Article) {},
			wantErrors: 0,
		},
		{
			name:       "missing title - required field",
			mutate:     func(a *models.Article) { a.Title = "" },
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "title at limit",
			mutate:     func(a *models.Article) { a.Title = strings.Repeat("t", models.MaxTitleLength) },
			wantErrors: 0,
		},
		{
			name:       "title over limit",
			mutate:     func(a *models.Article) { a.Title = strings.Repeat("t", models.MaxTitleLength+1) },
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "multibyte title counted in characters",
			mutate:     func(a *models.Article) { a.Title = strings.Repeat("文", models.MaxTitleLength) },
			wantErrors: 0,
		},
		{
			name:       "subtitle over limit",
			mutate:     func(a *models.Article) { a.Subtitle = strings.Repeat("s", models.MaxSubtitleLength+1) },
			wantErrors: 1,
			wantFields: []string{"subtitle"},
		},
		{
			name:       "excerpt over limit",
			mutate:     func(a *models.Article) { a.Excerpt = strings.Repeat("e", models.MaxExcerptLength+1) },
			wantErrors: 1,
			wantFields: []string{"excerpt"},
		},
		{
			name:       "missing content",
			mutate:     func(a *models.Article) { a.Content = "" },
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name:       "whitespace content",
			mutate:     func(a *models.Article) { a.Content = "   \n " },
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name:       "invalid category",
			mutate:     func(a *models.Article) { a.Category = "Cooking" },
			wantErrors: 1,
			wantFields: []string{"category"},
		},
		{
			name:       "bad cover image",
			mutate:     func(a *models.Article) { a.CoverImage = strPtr("not a url") },
			wantErrors: 1,
			wantFields: []string{"cover_image"},
		},
		{
			name:       "absolute cover image",
			mutate:     func(a *models.Article) { a.CoverImage = strPtr("https://cdn.example.com/cover.png") },
			wantErrors: 0,
		},
		{
			name: "multiple validation errors",
			mutate: func(a *models.Article) {
				a.Title = ""
				a.Content = ""
				a.Category = "Unknown"
			},
			wantErrors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := validArticle()
			tt.mutate(article)

			errs := ValidateArticle(article)
			if len(errs) != tt.wantErrors {
				t.Errorf("ValidateArticle() got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}

			for _, wantField := range tt.wantFields {
				if !errs.HasField(wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateContact(t *testing.T) {
	full := models.ContactSubmission{Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Hello there"}

	if errs := ValidateContact(&full); len(errs) != 0 {
		t.Errorf("Expected valid submission, got %v", errs)
	}

	missing := full
	missing.Subject = "  "
	missing.Message = ""
	errs := ValidateContact(&missing)
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(errs), errs)
	}
	if !errs.HasField("subject") || !errs.HasField("message") {
		t.Errorf("Expected subject and message errors, got %v", errs)
	}
}

func TestErrors_AsError(t *testing.T) {
	var empty Errors
	if empty.Err() != nil {
		t.Error("Empty error list should convert to nil")
	}

	err := Errors{{Field: "title", Message: "Article title is required"}}.Err()
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatal("Expected errors.As to find validation.Errors")
	}
	if !strings.Contains(err.Error(), "Article title is required") {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("Travel") {
		t.Error("Travel should be valid")
	}
	if IsValidCategory("travel") {
		t.Error("Categories are case sensitive")
	}
	if IsValidCategory(models.CategoryAll) {
		t.Error("The All sentinel is not a stored category")
	}
}
