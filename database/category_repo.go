package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories ordered by name
func (r *CategoryRepo) FindAll(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID
func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update renames an existing category
func (r *CategoryRepo) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(category).Select("name").Updates(category)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a category and every post filed under it.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := tx.Model(&models.Post{}).Select("id").Where("category_id = ?", id)
		if err := deletePosts(tx, posts); err != nil {
			return err
		}

		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// deletePosts removes the posts selected by the subquery ids together with
// their tag associations.
func deletePosts(tx *gorm.DB, ids *gorm.DB) error {
	if err := tx.Exec("DELETE FROM post_tags WHERE post_id IN (?)", ids).Error; err != nil {
		return err
	}
	return tx.Where("id IN (?)", ids).Delete(&models.Post{}).Error
}
