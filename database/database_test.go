package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := Open(Options{Driver: DriverSQLite, DSN: dsn, LogLevel: logger.Silent})
	require.NoError(t, err, "Failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, New(db).Migrate(context.Background()))
	return db
}

type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	store    Database
	category *models.Category
	author   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		ctx:   context.Background(),
		db:    db,
		store: New(db),
	}
	f.category = f.addCategory(t, "Engineering")
	f.author = f.addUser(t, "editor")
	return f
}

func (f *fixture) addCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, f.store.CategoryRepo().Add(f.ctx, category))
	return category
}

func (f *fixture) addTag(t *testing.T, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, f.store.TagRepo().Add(f.ctx, tag))
	return tag
}

func (f *fixture) addUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Username: username}
	require.NoError(t, f.store.UserRepo().Upsert(f.ctx, user))
	return user
}

func (f *fixture) addPost(t *testing.T, title string, tags ...*models.Tag) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:      title,
		Body:       "Body of " + title,
		CategoryID: f.category.ID,
		AuthorID:   f.author.ID,
	}
	for _, tag := range tags {
		post.Tags = append(post.Tags, models.Tag{ID: tag.ID})
	}
	require.NoError(t, f.store.PostRepo().Add(f.ctx, post))
	return post
}

func (f *fixture) countPosts(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Post{}).Count(&count).Error)
	return count
}

func (f *fixture) countPostTags(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Table("post_tags").Count(&count).Error)
	return count
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)

	_, err = Open(Options{Driver: DriverSQLite})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, New(db).Ping(context.Background()))
}
