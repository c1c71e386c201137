package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Category is the fixed set of article categories
type Category string

const (
	CategoryTechnology Category = "Technology"
	CategoryLifestyle  Category = "Lifestyle"
	CategoryBusiness   Category = "Business"
	CategoryDesign     Category = "Design"
	CategoryPersonal   Category = "Personal"
	CategoryTravel     Category = "Travel"
	CategoryOther      Category = "Other"
)

// CategoryAll is the list filter sentinel meaning "any category"
const CategoryAll = "All"

// DefaultCategory is applied when a new article names none
const DefaultCategory = CategoryPersonal

// ValidCategories defines allowed article categories
var ValidCategories = map[Category]bool{
	CategoryTechnology: true,
	CategoryLifestyle:  true,
	CategoryBusiness:   true,
	CategoryDesign:     true,
	CategoryPersonal:   true,
	CategoryTravel:     true,
	CategoryOther:      true,
}

// Field limits, counted in characters
const (
	MaxTitleLength    = 200
	MaxSubtitleLength = 300
	MaxExcerptLength  = 500
)

// WordsPerMinute drives the reading time estimate
const WordsPerMinute = 200

// Article represents a blog article in the system
type Article struct {
	ID            string     `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Subtitle      string     `json:"subtitle" db:"subtitle"`
	Excerpt       string     `json:"excerpt" db:"excerpt"`
	Content       string     `json:"content" db:"content"`
	CoverImage    *string    `json:"cover_image" db:"cover_image"`
	Category      Category   `json:"category" db:"category"`
	Author        string     `json:"author" db:"author"`
	Tags          Tags       `json:"tags" db:"tags"`
	Published     bool       `json:"published" db:"published"`
	PublishedDate *time.Time `json:"published_date" db:"published_date"`
	ReadingTime   int        `json:"reading_time" db:"reading_time"`
	Views         int        `json:"views" db:"views"`
	CreatedDate   time.Time  `json:"created_date" db:"created_date"`
	UpdatedDate   time.Time  `json:"updated_date" db:"updated_date"`
}

// ArticleInput is the create payload
type ArticleInput struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	CoverImage    *string    `json:"cover_image"`
	Category      Category   `json:"category"`
	Author        string     `json:"author"`
	Tags          []string   `json:"tags"`
	Published     bool       `json:"published"`
	PublishedDate *time.Time `json:"published_date"`
}

// ArticlePatch is the update payload. A nil field is left untouched.
type ArticlePatch struct {
	Title      *string   `json:"title"`
	Subtitle   *string   `json:"subtitle"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"cover_image"` // "" clears the image
	Category   *Category `json:"category"`
	Author     *string   `json:"author"`
	Tags       *[]string `json:"tags"`
	Published  *bool     `json:"published"`
}

// ArticleList is one page of a filtered listing
type ArticleList struct {
	Articles    []*Article `json:"articles"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	Total       int        `json:"total"`
}

// CategoryCount is one bucket of the category breakdown
type CategoryCount struct {
	Category Category `json:"category" db:"category" bson:"_id"`
	Count    int      `json:"count" db:"count" bson:"count"`
}

// ArticleStats summarizes the article collection
type ArticleStats struct {
	Total         int             `json:"total"`
	Published     int             `json:"published"`
	Drafts        int             `json:"drafts"`
	CategoryStats []CategoryCount `json:"categoryStats"`
}

// ReadingTime returns the estimated minutes needed to read content:
// whitespace-delimited words divided by WordsPerMinute, rounded up.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// NormalizeTags trims every tag and drops the ones left empty
func NormalizeTags(tags []string) Tags {
	out := make(Tags, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Tags is an ordered tag list. SQL stores use a JSON array column.
type Tags []string

// Value implements driver.Valuer
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (t *Tags) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Tags", src)
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	*t = tags
	return nil
}
