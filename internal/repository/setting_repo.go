package repository

import (
	"errors"

	"github.com/plumecms/plume-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository data access for site settings
type SettingRepository interface {
	Find(key string) (*domain.Setting, error)
	All() ([]domain.Setting, error)
	Upsert(setting *domain.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Find returns the setting row for key, or (nil, nil) when unset
func (r *settingRepository) Find(key string) (*domain.Setting, error) {
	var setting domain.Setting
	err := r.db.Where("`key` = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) All() ([]domain.Setting, error) {
	var settings []domain.Setting
	err := r.db.Order("`key` ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) Upsert(setting *domain.Setting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}
