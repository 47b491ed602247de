package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups posts. Deleting a category deletes its posts.
type Category struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
}

func (c Category) String() string {
	return c.Name
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	return validateModel(c)
}
