package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/personal-blog-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a list of field failures. A non-empty list is returned as an error.
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns nil for an empty list so callers can `return errs.Err()`
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// HasField reports whether any error concerns the given field
func (e Errors) HasField(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// ValidateArticle validates a fully assembled article before it is written
func ValidateArticle(article *models.Article) Errors {
	var errors Errors

	// Validate title
	if article.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "Article title is required"})
	} else if utf8.RuneCountInString(article.Title) > models.MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("Title cannot exceed %d characters", models.MaxTitleLength),
		})
	}

	// Validate subtitle
	if utf8.RuneCountInString(article.Subtitle) > models.MaxSubtitleLength {
		errors = append(errors, ValidationError{
			Field:   "subtitle",
			Message: fmt.Sprintf("Subtitle cannot exceed %d characters", models.MaxSubtitleLength),
		})
	}

	// Validate excerpt
	if utf8.RuneCountInString(article.Excerpt) > models.MaxExcerptLength {
		errors = append(errors, ValidationError{
			Field:   "excerpt",
			Message: fmt.Sprintf("Excerpt cannot exceed %d characters", models.MaxExcerptLength),
		})
	}

	// Validate content
	if strings.TrimSpace(article.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "Article content is required"})
	}

	// Validate category
	if !models.ValidCategories[article.Category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: Technology, Lifestyle, Business, Design, Personal, Travel, Other",
			Value:   article.Category,
		})
	}

	// Validate cover image
	if article.CoverImage != nil {
		if _, err := url.ParseRequestURI(*article.CoverImage); err != nil {
			errors = append(errors, ValidationError{Field: "cover_image", Message: "cover_image must be a URL", Value: *article.CoverImage})
		}
	}

	if article.ReadingTime < 0 {
		errors = append(errors, ValidationError{Field: "reading_time", Message: "reading_time cannot be negative"})
	}

	return errors
}

// ValidateContact validates a contact form submission; every field is mandatory
func ValidateContact(sub *models.ContactSubmission) Errors {
	var errors Errors

	fields := []struct {
		name  string
		value string
	}{
		{"name", sub.Name},
		{"email", sub.Email},
		{"subject", sub.Subject},
		{"message", sub.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errors = append(errors, ValidationError{Field: f.name, Message: f.name + " is required"})
		}
	}

	return errors
}

// IsValidCategory reports whether a raw string names a known category
func IsValidCategory(s string) bool {
	return models.ValidCategories[models.Category(s)]
}
