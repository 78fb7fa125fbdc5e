package repository

import (
	"errors"

	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"gorm.io/gorm"
)

// TermRepository data access for taxonomy terms
type TermRepository interface {
	FindByIDs(ids []uint64) ([]domain.Term, error)
	FindBySlug(slug string) (*domain.Term, error)
	List() ([]domain.Term, error)
	Create(term *domain.Term) error
}

type termRepository struct {
	db *gorm.DB
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(db *gorm.DB) TermRepository {
	return &termRepository{db: db}
}

func (r *termRepository) FindByIDs(ids []uint64) ([]domain.Term, error) {
	var terms []domain.Term
	if len(ids) == 0 {
		return terms, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&terms).Error
	return terms, err
}

func (r *termRepository) FindBySlug(slug string) (*domain.Term, error) {
	var term domain.Term
	err := r.db.Where("slug = ?", slug).First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrTermNotFound
	}
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *termRepository) List() ([]domain.Term, error) {
	var terms []domain.Term
	err := r.db.Order("name ASC").Find(&terms).Error
	return terms, err
}

func (r *termRepository) Create(term *domain.Term) error {
	return r.db.Create(term).Error
}
