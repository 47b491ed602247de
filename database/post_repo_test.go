package database

import (
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepo_Add(t *testing.T) {
	t.Run("derives the excerpt and loads relations", func(t *testing.T) {
		f := newFixture(t)
		tag := f.addTag(t, "go")

		post := &models.Post{
			Title:      "Hello",
			Body:       "# Hello\n\nThis is *body* text.",
			CategoryID: f.category.ID,
			AuthorID:   f.author.ID,
			Tags:       []models.Tag{{ID: tag.ID}},
		}
		require.NoError(t, f.store.PostRepo().Add(f.ctx, post))

		assert.Equal(t, "Hello This is body text.", post.Excerpt)
		require.NotNil(t, post.Category)
		assert.Equal(t, "Engineering", post.Category.Name)
		require.NotNil(t, post.Author)
		assert.Equal(t, "editor", post.Author.Username)
		require.Len(t, post.Tags, 1)
		assert.Equal(t, "go", post.Tags[0].Name)
	})

	t.Run("excerpt is at most 54 characters", func(t *testing.T) {
		f := newFixture(t)

		post := &models.Post{
			Title:      "Long",
			Body:       strings.Repeat("word ", 100),
			CategoryID: f.category.ID,
			AuthorID:   f.author.ID,
		}
		require.NoError(t, f.store.PostRepo().Add(f.ctx, post))

		assert.Equal(t, models.ExcerptLength, utf8.RuneCountInString(post.Excerpt))
		assert.True(t, strings.HasPrefix(post.Excerpt, "word word"))
	})

	t.Run("keeps a supplied excerpt", func(t *testing.T) {
		f := newFixture(t)

		post := &models.Post{
			Title:      "Manual",
			Body:       "Generated text would differ",
			Excerpt:    "Written by hand",
			CategoryID: f.category.ID,
			AuthorID:   f.author.ID,
		}
		require.NoError(t, f.store.PostRepo().Add(f.ctx, post))
		assert.Equal(t, "Written by hand", post.Excerpt)
	})

	t.Run("overwrites a supplied modified time", func(t *testing.T) {
		f := newFixture(t)

		stale := time.Date(1999, 12, 31, 23, 59, 0, 0, time.UTC)
		post := &models.Post{
			Title:        "Stamp",
			Body:         "body",
			ModifiedTime: stale,
			CategoryID:   f.category.ID,
			AuthorID:     f.author.ID,
		}
		before := time.Now().Add(-time.Second)
		require.NoError(t, f.store.PostRepo().Add(f.ctx, post))

		assert.True(t, post.ModifiedTime.After(before), "modified time %v should be recent", post.ModifiedTime)
	})

	t.Run("missing category", func(t *testing.T) {
		f := newFixture(t)

		post := &models.Post{Title: "Orphan", Body: "b", CategoryID: uuid.New(), AuthorID: f.author.ID}
		err := f.store.PostRepo().Add(f.ctx, post)

		require.Error(t, err)
		assert.True(t, errs.IsReferentialIntegrityError(err))
		var apiErr *errs.ApiErr
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "category", apiErr.Field)
		assert.Zero(t, f.countPosts(t))
	})

	t.Run("no category at all", func(t *testing.T) {
		f := newFixture(t)

		post := &models.Post{Title: "Orphan", Body: "b", AuthorID: f.author.ID}
		err := f.store.PostRepo().Add(f.ctx, post)

		assert.True(t, errs.IsReferentialIntegrityError(err))
		assert.Zero(t, f.countPosts(t))
	})

	t.Run("missing author", func(t *testing.T) {
		f := newFixture(t)

		post := &models.Post{Title: "Ghost", Body: "b", CategoryID: f.category.ID, AuthorID: uuid.New()}
		err := f.store.PostRepo().Add(f.ctx, post)

		var apiErr *errs.ApiErr
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, errs.IsReferentialIntegrityError(err))
		assert.Equal(t, "author", apiErr.Field)
		assert.Zero(t, f.countPosts(t))
	})

	t.Run("missing tag", func(t *testing.T) {
		f := newFixture(t)
		tag := f.addTag(t, "real")

		post := &models.Post{
			Title:      "Tagged",
			Body:       "b",
			CategoryID: f.category.ID,
			AuthorID:   f.author.ID,
			Tags:       []models.Tag{{ID: tag.ID}, {ID: uuid.New()}},
		}
		err := f.store.PostRepo().Add(f.ctx, post)

		assert.True(t, errs.IsReferentialIntegrityError(err))
		assert.Zero(t, f.countPosts(t))
		assert.Zero(t, f.countPostTags(t))
	})

	t.Run("title too long", func(t *testing.T) {
		f := newFixture(t)

		post := &models.Post{
			Title:      strings.Repeat("x", 71),
			Body:       "b",
			CategoryID: f.category.ID,
			AuthorID:   f.author.ID,
		}
		err := f.store.PostRepo().Add(f.ctx, post)

		var apiErr *errs.ApiErr
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, errs.IsValidationError(err))
		assert.Equal(t, "title", apiErr.Field)
		assert.Zero(t, f.countPosts(t))
	})

	t.Run("duplicate tag ids are linked once", func(t *testing.T) {
		f := newFixture(t)
		tag := f.addTag(t, "dup")

		post := &models.Post{
			Title:      "Twice",
			Body:       "b",
			CategoryID: f.category.ID,
			AuthorID:   f.author.ID,
			Tags:       []models.Tag{{ID: tag.ID}, {ID: tag.ID}},
		}
		require.NoError(t, f.store.PostRepo().Add(f.ctx, post))
		assert.Len(t, post.Tags, 1)
		assert.EqualValues(t, 1, f.countPostTags(t))
	})
}

func TestPostRepo_Update(t *testing.T) {
	t.Run("stamps modified time and keeps created time", func(t *testing.T) {
		f := newFixture(t)
		post := f.addPost(t, "Original")
		created := post.CreatedTime
		firstModified := post.ModifiedTime

		update := &models.Post{
			ID:         post.ID,
			Title:      "Renamed",
			Body:       post.Body,
			Excerpt:    post.Excerpt,
			CategoryID: post.CategoryID,
			AuthorID:   post.AuthorID,
		}
		require.NoError(t, f.store.PostRepo().Update(f.ctx, update))

		assert.Equal(t, "Renamed", update.Title)
		assert.True(t, update.CreatedTime.Equal(created))
		assert.False(t, update.ModifiedTime.Before(firstModified))
	})

	t.Run("a stored excerpt is not regenerated", func(t *testing.T) {
		f := newFixture(t)
		post := f.addPost(t, "Keep")
		require.Equal(t, "Body of Keep", post.Excerpt)

		post.Body = "A brand new body"
		require.NoError(t, f.store.PostRepo().Update(f.ctx, post))

		stored, err := f.store.PostRepo().FindByID(f.ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Body of Keep", stored.Excerpt)
		assert.Equal(t, "A brand new body", stored.Body)
	})

	t.Run("a cleared excerpt is derived again", func(t *testing.T) {
		f := newFixture(t)
		post := f.addPost(t, "Clear")

		post.Body = "Fresh *markdown*"
		post.Excerpt = ""
		require.NoError(t, f.store.PostRepo().Update(f.ctx, post))

		assert.Equal(t, "Fresh markdown", post.Excerpt)
	})

	t.Run("replaces tags", func(t *testing.T) {
		f := newFixture(t)
		oldTag := f.addTag(t, "old")
		newTag := f.addTag(t, "new")
		post := f.addPost(t, "Retag", oldTag)

		post.Tags = []models.Tag{{ID: newTag.ID}}
		require.NoError(t, f.store.PostRepo().Update(f.ctx, post))

		require.Len(t, post.Tags, 1)
		assert.Equal(t, "new", post.Tags[0].Name)

		post.Tags = nil
		require.NoError(t, f.store.PostRepo().Update(f.ctx, post))
		assert.Empty(t, post.Tags)
		assert.Zero(t, f.countPostTags(t))
	})

	t.Run("unknown post", func(t *testing.T) {
		f := newFixture(t)

		err := f.store.PostRepo().Update(f.ctx, &models.Post{
			ID:         uuid.New(),
			Title:      "Nope",
			Body:       "b",
			CategoryID: f.category.ID,
			AuthorID:   f.author.ID,
		})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Zero(t, f.countPosts(t))
	})

	t.Run("invalid category leaves the post untouched", func(t *testing.T) {
		f := newFixture(t)
		post := f.addPost(t, "Stable")

		err := f.store.PostRepo().Update(f.ctx, &models.Post{
			ID:         post.ID,
			Title:      "Changed",
			Body:       "b",
			CategoryID: uuid.New(),
			AuthorID:   f.author.ID,
		})
		assert.True(t, errs.IsReferentialIntegrityError(err))

		stored, err := f.store.PostRepo().FindByID(f.ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Stable", stored.Title)
	})

	t.Run("concurrent writers keep modified time monotonic", func(t *testing.T) {
		f := newFixture(t)
		post := f.addPost(t, "Busy")

		var wg sync.WaitGroup
		errCh := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errCh <- f.store.PostRepo().Update(f.ctx, &models.Post{
					ID:         post.ID,
					Title:      "Busy",
					Body:       "concurrent body",
					CategoryID: f.category.ID,
					AuthorID:   f.author.ID,
				})
			}()
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			require.NoError(t, err)
		}

		stored, err := f.store.PostRepo().FindByID(f.ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "concurrent body", stored.Excerpt)
		assert.False(t, stored.ModifiedTime.Before(post.ModifiedTime))
		assert.Zero(t, f.store.PostRepo().locks.len())
	})
}

func TestPostRepo_FindAll(t *testing.T) {
	f := newFixture(t)
	golang := f.addTag(t, "golang")
	other := f.addCategory(t, "Other")

	first := f.addPost(t, "First", golang)
	second := f.addPost(t, "Second")

	third := &models.Post{Title: "Third", Body: "b", CategoryID: other.ID, AuthorID: f.author.ID}
	require.NoError(t, f.store.PostRepo().Add(f.ctx, third))

	all, err := f.store.PostRepo().FindAll(f.ctx, PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedTime.After(all[i-1].CreatedTime), "posts must be newest first")
	}

	byCategory, err := f.store.PostRepo().FindAll(f.ctx, PostFilter{CategoryID: f.category.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, postIDs(byCategory))

	byTag, err := f.store.PostRepo().FindAll(f.ctx, PostFilter{TagID: golang.ID})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, postIDs(byTag))

	byAuthor, err := f.store.PostRepo().FindAll(f.ctx, PostFilter{AuthorID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, byAuthor)
}

func TestPostRepo_Delete(t *testing.T) {
	f := newFixture(t)
	tag := f.addTag(t, "kept")
	post := f.addPost(t, "Gone", tag)

	require.NoError(t, f.store.PostRepo().Delete(f.ctx, post.ID))

	assert.Zero(t, f.countPosts(t))
	assert.Zero(t, f.countPostTags(t))
	_, err := f.store.TagRepo().FindByID(f.ctx, tag.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.store.PostRepo().Delete(f.ctx, post.ID), gorm.ErrRecordNotFound)
}

func postIDs(posts []*models.Post) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	return ids
}
