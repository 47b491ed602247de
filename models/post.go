package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/markdown"
	"gorm.io/gorm"
)

// ExcerptLength is the number of characters taken from the rendered body
// when an excerpt is derived.
const ExcerptLength = 54

// Post is a blog article. Body holds markdown source.
type Post struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string    `json:"title" db:"title" gorm:"type:varchar(70);not null" validate:"required,max=70"`
	Body         string    `json:"body" db:"body" gorm:"type:text;not null" validate:"required"`
	CreatedTime  time.Time `json:"createdTime" db:"created_time" gorm:"not null"`
	ModifiedTime time.Time `json:"modifiedTime" db:"modified_time" gorm:"not null"`
	Excerpt      string    `json:"excerpt" db:"excerpt" gorm:"type:varchar(200);not null" validate:"max=200"`

	CategoryID uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;not null;index:idx_post_category_id"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	AuthorID   uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_post_author_id"`
	Author     *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	Tags       []Tag     `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" validate:"-"`
}

func (p Post) String() string {
	return p.Title
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave runs on every create and update: it stamps ModifiedTime,
// derives the excerpt when none is set and validates the fields.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	now := tx.NowFunc()
	p.ModifiedTime = now
	if p.CreatedTime.IsZero() {
		p.CreatedTime = now
	}

	if p.Excerpt == "" {
		excerpt, err := markdown.Excerpt(p.Body, ExcerptLength)
		if err != nil {
			return err
		}
		p.Excerpt = excerpt
	}

	return validateModel(p)
}
