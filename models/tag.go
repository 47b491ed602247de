package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag labels posts through the post_tags join table. Removing a tag only
// removes its associations.
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
}

func (t Tag) String() string {
	return t.Name
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	return validateModel(t)
}
