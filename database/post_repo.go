package database

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows FindAll. Zero ids are ignored.
type PostFilter struct {
	CategoryID uuid.UUID
	TagID      uuid.UUID
	AuthorID   uuid.UUID
}

type PostRepo struct {
	db    *gorm.DB
	locks *recordLocks
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db, locks: newRecordLocks()}
}

func withPostRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Author").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("name")
	})
}

// FindAll returns posts, newest first.
func (r *PostRepo) FindAll(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	query := withPostRelations(r.db.WithContext(ctx)).Order("created_time DESC")

	if filter.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != uuid.Nil {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.TagID != uuid.Nil {
		tagged := r.db.WithContext(ctx).Table("post_tags").Select("post_id").Where("tag_id = ?", filter.TagID)
		query = query.Where("posts.id IN (?)", tagged)
	}

	var posts []*models.Post
	err := query.Find(&posts).Error
	return posts, err
}

// FindByID returns a post with its category, author and tags.
func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := withPostRelations(r.db.WithContext(ctx)).First(&post, "posts.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Add checks the references of post and inserts it with its tag
// associations. On success post is reloaded with its relations.
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := checkPostReferences(tx, post)
		if err != nil {
			return err
		}
		post.Tags = tags

		if err := tx.Omit("Category", "Author", "Tags.*").Create(post).Error; err != nil {
			return err
		}
		return withPostRelations(tx).First(post, "posts.id = ?", post.ID).Error
	})
}

// Update overwrites every field of an existing post and replaces its tags.
// A zero CreatedTime keeps the stored one. Writers to the same post are
// serialised so the excerpt is derived at most once per write.
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	unlock := r.locks.Lock(post.ID)
	defer unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Post
		if err := tx.Select("id", "created_time").First(&existing, "id = ?", post.ID).Error; err != nil {
			return err
		}
		if post.CreatedTime.IsZero() {
			post.CreatedTime = existing.CreatedTime
		}

		tags, err := checkPostReferences(tx, post)
		if err != nil {
			return err
		}

		post.Tags = nil
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}

		association := tx.Model(post).Association("Tags")
		if len(tags) == 0 {
			err = association.Clear()
		} else {
			err = association.Replace(tags)
		}
		if err != nil {
			return err
		}

		return withPostRelations(tx).First(post, "posts.id = ?", post.ID).Error
	})
}

// Delete removes a post and its tag associations.
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := r.locks.Lock(id)
	defer unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// checkPostReferences fails with a ReferentialIntegrityError when the
// category, the author or any tag of post does not exist, and returns the
// stored tags otherwise.
func checkPostReferences(tx *gorm.DB, post *models.Post) ([]models.Tag, error) {
	if err := requireRow(tx, &models.Category{}, "category", post.CategoryID); err != nil {
		return nil, err
	}
	if err := requireRow(tx, &models.User{}, "author", post.AuthorID); err != nil {
		return nil, err
	}

	ids := tagIDs(post.Tags)
	if len(ids) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		found := lo.Map(tags, func(tag models.Tag, _ int) uuid.UUID { return tag.ID })
		if missing, _ := lo.Difference(ids, found); len(missing) > 0 {
			return nil, errs.NewReferentialIntegrityError("tags", missing[0])
		}
	}
	return tags, nil
}

func requireRow(tx *gorm.DB, model any, field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.NewReferentialIntegrityError(field, id)
	}

	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewReferentialIntegrityError(field, id)
	}
	return nil
}

// tagIDs returns the distinct ids of tags in a stable order.
func tagIDs(tags []models.Tag) []uuid.UUID {
	ids := lo.Uniq(lo.Map(tags, func(tag models.Tag, _ int) uuid.UUID { return tag.ID }))
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
