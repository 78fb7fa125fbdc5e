package migration

import (
	"github.com/plumecms/plume-backend/internal/domain"
	"gorm.io/gorm"
)

// Run creates or updates the schema for all models
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Post{},
		&domain.PostRevision{},
		&domain.Term{},
		&domain.Setting{},
	)
}
