package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors an identity from the external user directory so that post
// authorship can be enforced by a foreign key. IDs come from the directory.
type User struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username string    `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex" validate:"required,max=150"`
	Email    string    `json:"email,omitempty" db:"email" gorm:"type:varchar(254)" validate:"omitempty,email,max=254"`
}

func (u User) String() string {
	return u.Username
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return validateModel(u)
}
