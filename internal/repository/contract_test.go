package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
)

// repoFactory returns an ArticleRepository over an empty store
type repoFactory func(t *testing.T) repository.ArticleRepository

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func newArticle(title string, category models.Category, published bool, offset time.Duration, tags ...string) *models.Article {
	created := baseTime.Add(offset)
	a := &models.Article{
		Title:       title,
		Subtitle:    "",
		Content:     "Some content for " + title,
		Category:    category,
		Author:      "Richard Li",
		Tags:        models.NormalizeTags(tags),
		Published:   published,
		ReadingTime: 1,
		CreatedDate: created,
		UpdatedDate: created,
	}
	if published {
		pd := created
		a.PublishedDate = &pd
	}
	return a
}

func mustCreate(t *testing.T, repo repository.ArticleRepository, a *models.Article) *models.Article {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), a))
	require.NotEmpty(t, a.ID)
	return a
}

func titles(articles []*models.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Title)
	}
	return out
}

// runArticleRepositoryContract exercises behavior every store must share
func runArticleRepositoryContract(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := newRepo(t)
		cover := "https://cdn.example.com/a.png"
		a := newArticle("First post", models.CategoryTechnology, true, 0, "go", "testing")
		a.CoverImage = &cover
		mustCreate(t, repo, a)

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, "First post", got.Title)
		assert.Equal(t, models.CategoryTechnology, got.Category)
		assert.Equal(t, models.Tags{"go", "testing"}, got.Tags)
		assert.True(t, got.Published)
		require.NotNil(t, got.PublishedDate)
		assert.True(t, got.PublishedDate.Equal(baseTime))
		assert.True(t, got.CreatedDate.Equal(baseTime))
		require.NotNil(t, got.CoverImage)
		assert.Equal(t, cover, *got.CoverImage)
		assert.Equal(t, 0, got.Views)
	})

	t.Run("draft has no publish date", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, newArticle("Draft", models.CategoryPersonal, false, 0))

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, got.Published)
		assert.Nil(t, got.PublishedDate)
		assert.Nil(t, got.CoverImage)
		assert.NotNil(t, got.Tags)
		assert.Empty(t, got.Tags)
	})

	t.Run("unknown and malformed ids are not found", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, newArticle("Kept", models.CategoryPersonal, false, 0))
		require.NoError(t, repo.Delete(ctx, a.ID))

		for _, id := range []string{a.ID, "not-an-id", ""} {
			_, err := repo.GetByID(ctx, id)
			assert.ErrorIs(t, err, repository.ErrNotFound, "GetByID(%q)", id)
			assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound, "Delete(%q)", id)
			assert.ErrorIs(t, repo.IncrementViews(ctx, id), repository.ErrNotFound, "IncrementViews(%q)", id)
		}
	})

	t.Run("update replaces fields but keeps views", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, newArticle("Before", models.CategoryPersonal, false, 0, "old"))
		require.NoError(t, repo.IncrementViews(ctx, a.ID))

		a.Title = "After"
		a.Tags = models.Tags{"new"}
		a.Published = true
		published := baseTime.Add(time.Hour)
		a.PublishedDate = &published
		a.UpdatedDate = published
		a.Views = 0
		require.NoError(t, repo.Update(ctx, a))

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.Equal(t, models.Tags{"new"}, got.Tags)
		assert.True(t, got.Published)
		require.NotNil(t, got.PublishedDate)
		assert.True(t, got.PublishedDate.Equal(published))
		assert.True(t, got.UpdatedDate.Equal(published))
		assert.Equal(t, 1, got.Views)
	})

	t.Run("update of deleted article is not found", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, newArticle("Gone", models.CategoryPersonal, false, 0))
		require.NoError(t, repo.Delete(ctx, a.ID))

		assert.ErrorIs(t, repo.Update(ctx, a), repository.ErrNotFound)
	})

	t.Run("increment views", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, newArticle("Popular", models.CategoryPersonal, true, 0))

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.IncrementViews(ctx, a.ID))
		}

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Views)
		assert.True(t, got.UpdatedDate.Equal(a.UpdatedDate), "view counting must not touch updated_date")
	})

	t.Run("delete twice", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, newArticle("Short lived", models.CategoryPersonal, false, 0))

		require.NoError(t, repo.Delete(ctx, a.ID))
		assert.ErrorIs(t, repo.Delete(ctx, a.ID), repository.ErrNotFound)
	})

	t.Run("ordering puts newest publications first and drafts last", func(t *testing.T) {
		repo := newRepo(t)
		mustCreate(t, repo, newArticle("Old", models.CategoryPersonal, true, 1*time.Hour))
		mustCreate(t, repo, newArticle("Draft old", models.CategoryPersonal, false, 2*time.Hour))
		mustCreate(t, repo, newArticle("New", models.CategoryPersonal, true, 3*time.Hour))
		mustCreate(t, repo, newArticle("Draft new", models.CategoryPersonal, false, 4*time.Hour))

		articles, total, err := repo.List(ctx, repository.ArticleQuery{})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"New", "Old", "Draft new", "Draft old"}, titles(articles))
	})

	t.Run("pagination", func(t *testing.T) {
		repo := newRepo(t)
		for i := 1; i <= 12; i++ {
			// article 12 is the newest and ranks first
			mustCreate(t, repo, newArticle(fmt.Sprintf("Post %02d", i), models.CategoryTravel, true, time.Duration(i)*time.Minute))
		}

		articles, total, err := repo.List(ctx, repository.ArticleQuery{
			Published: boolPtr(true),
			Offset:    5,
			Limit:     5,
		})
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Equal(t, []string{"Post 07", "Post 06", "Post 05", "Post 04", "Post 03"}, titles(articles))

		last, _, err := repo.List(ctx, repository.ArticleQuery{Offset: 10, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, []string{"Post 02", "Post 01"}, titles(last))

		beyond, total, err := repo.List(ctx, repository.ArticleQuery{Offset: 20, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Empty(t, beyond)
	})

	t.Run("filters", func(t *testing.T) {
		repo := newRepo(t)
		mustCreate(t, repo, newArticle("Learning React hooks", models.CategoryTechnology, true, 1*time.Minute, "frontend"))
		mustCreate(t, repo, newArticle("Backpacking Peru", models.CategoryTravel, true, 2*time.Minute, "REACT-native"))
		mustCreate(t, repo, newArticle("Draft about reactors", models.CategoryTechnology, false, 3*time.Minute))
		mustCreate(t, repo, newArticle("Morning routines", models.CategoryLifestyle, true, 4*time.Minute, "habits"))

		tests := []struct {
			name  string
			query repository.ArticleQuery
			want  []string
		}{
			{
				name:  "search matches title and tags case-insensitively",
				query: repository.ArticleQuery{Published: boolPtr(true), Search: "react"},
				want:  []string{"Backpacking Peru", "Learning React hooks"},
			},
			{
				name:  "search without publish filter includes drafts",
				query: repository.ArticleQuery{Search: "REACT"},
				want:  []string{"Backpacking Peru", "Learning React hooks", "Draft about reactors"},
			},
			{
				name:  "category",
				query: repository.ArticleQuery{Category: string(models.CategoryTechnology)},
				want:  []string{"Learning React hooks", "Draft about reactors"},
			},
			{
				name:  "category All is no filter",
				query: repository.ArticleQuery{Published: boolPtr(true), Category: models.CategoryAll},
				want:  []string{"Morning routines", "Backpacking Peru", "Learning React hooks"},
			},
			{
				name:  "drafts only",
				query: repository.ArticleQuery{Published: boolPtr(false)},
				want:  []string{"Draft about reactors"},
			},
			{
				name:  "combined filters",
				query: repository.ArticleQuery{Published: boolPtr(true), Category: string(models.CategoryTechnology), Search: "hooks"},
				want:  []string{"Learning React hooks"},
			},
			{
				name:  "search metacharacters are literal",
				query: repository.ArticleQuery{Search: "%"},
				want:  []string{},
			},
			{
				name:  "regex metacharacters are literal",
				query: repository.ArticleQuery{Search: ".*"},
				want:  []string{},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				articles, total, err := repo.List(ctx, tt.query)
				require.NoError(t, err)
				assert.Equal(t, len(tt.want), total)
				assert.Equal(t, tt.want, titles(articles))
			})
		}
	})

	t.Run("search covers subtitles and non-ASCII letters", func(t *testing.T) {
		repo := newRepo(t)
		mustCreate(t, repo, newArticle("ÜBER Café", models.CategoryTravel, true, 1*time.Minute, "Ärger"))
		notes := newArticle("Weekend notes", models.CategoryLifestyle, true, 2*time.Minute)
		notes.Subtitle = "A Primer on gardening"
		mustCreate(t, repo, notes)
		mustCreate(t, repo, newArticle("Plain title", models.CategoryOther, true, 3*time.Minute, "misc"))

		tests := []struct {
			search string
			want   []string
		}{
			{"ÜBER", []string{"ÜBER Café"}},
			{"über", []string{"ÜBER Café"}},
			{"CAFÉ", []string{"ÜBER Café"}},
			{"Ärger", []string{"ÜBER Café"}},
			{"ärger", []string{"ÜBER Café"}},
			{"PRIMER", []string{"Weekend notes"}},
			{"garden", []string{"Weekend notes"}},
		}

		for _, tt := range tests {
			t.Run(tt.search, func(t *testing.T) {
				articles, total, err := repo.List(ctx, repository.ArticleQuery{Search: tt.search})
				require.NoError(t, err)
				assert.Equal(t, len(tt.want), total)
				assert.Equal(t, tt.want, titles(articles))
			})
		}
	})

	t.Run("stats", func(t *testing.T) {
		repo := newRepo(t)

		empty, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, empty.Total)
		assert.NotNil(t, empty.CategoryStats)
		assert.Empty(t, empty.CategoryStats)

		mustCreate(t, repo, newArticle("A", models.CategoryTechnology, true, 1*time.Minute))
		mustCreate(t, repo, newArticle("B", models.CategoryTechnology, false, 2*time.Minute))
		mustCreate(t, repo, newArticle("C", models.CategoryTravel, true, 3*time.Minute))
		mustCreate(t, repo, newArticle("D", models.CategoryBusiness, true, 4*time.Minute))

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Total)
		assert.Equal(t, 3, stats.Published)
		assert.Equal(t, 1, stats.Drafts)
		assert.Equal(t, []models.CategoryCount{
			{Category: models.CategoryBusiness, Count: 1},
			{Category: models.CategoryTechnology, Count: 2},
			{Category: models.CategoryTravel, Count: 1},
		}, stats.CategoryStats)
	})

	t.Run("stream all in creation order", func(t *testing.T) {
		repo := newRepo(t)
		mustCreate(t, repo, newArticle("Second", models.CategoryPersonal, true, 2*time.Minute))
		mustCreate(t, repo, newArticle("First", models.CategoryPersonal, false, 1*time.Minute))
		mustCreate(t, repo, newArticle("Third", models.CategoryPersonal, true, 3*time.Minute))

		var seen []string
		err := repo.StreamAll(ctx, func(a *models.Article) error {
			seen = append(seen, a.Title)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"First", "Second", "Third"}, seen)
	})
}
