package models

import "gorm.io/gorm"

// AllModels returns all models for migration.
// Referenced tables come first so the foreign keys on posts and post_tags
// can be created.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Tag{},
		&Post{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
