package database

import (
	"context"

	"github.com/rpupo63/blog-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db           *gorm.DB
	categoryRepo *CategoryRepo
	tagRepo      *TagRepo
	postRepo     *PostRepo
	userRepo     *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		categoryRepo: NewCategoryRepo(db),
		tagRepo:      NewTagRepo(db),
		postRepo:     NewPostRepo(db),
		userRepo:     NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the schema for every model.
func (d Database) Migrate(ctx context.Context) error {
	return models.AutoMigrate(d.db.WithContext(ctx))
}

// Ping checks that the primary database answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
