package repository

import (
	"errors"

	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository data access for posts. Create, Update and Delete each run
// as one transaction together with the revision writes they imply.
type PostRepository interface {
	FindByID(id uint64) (*domain.Post, error)
	FindBySlug(slug string) (*domain.Post, error)
	List(page, limit int) ([]*domain.Post, int64, error)
	FindSlugsLike(base string) ([]string, error)
	Create(post *domain.Post) error
	Update(post *domain.Post, replaceTerms bool, retention int) error
	Delete(id uint64) error
}

type postRepository struct {
	db        *gorm.DB
	revisions RevisionRepository
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB, revisions RevisionRepository) PostRepository {
	return &postRepository{db: db, revisions: revisions}
}

func (r *postRepository) FindByID(id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Preload("Terms").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindBySlug(slug string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Preload("Terms").Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	if err := r.db.Model(&domain.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Preload("Terms").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// FindSlugsLike returns every persisted slug equal to base or starting with
// "base-", so the resolver can pick a free suffix from one query.
func (r *postRepository) FindSlugsLike(base string) ([]string, error) {
	var slugs []string
	err := r.db.Model(&domain.Post{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Pluck("slug", &slugs).Error
	return slugs, err
}

// Create persists the post together with its first revision. A unique-index
// violation on the slug surfaces as ErrSlugConflict so the caller can retry
// with the next suffix.
func (r *postRepository) Create(post *domain.Post) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return r.revisions.CreateInitial(tx, post.ID, post.Content, post.AuthorID)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrSlugConflict
	}
	return err
}

// Update saves the mutated post fields and appends a revision in one
// transaction; the previous latest is demoted and overflow pruned with it.
func (r *postRepository) Update(post *domain.Post, replaceTerms bool, retention int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		if replaceTerms {
			if err := tx.Model(post).Association("Terms").Replace(post.Terms); err != nil {
				return err
			}
		}
		return r.revisions.Append(tx, post.ID, post.Content, post.UpdatedBy, retention)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrSlugConflict
	}
	return err
}

// Delete removes the post, its revisions and its term links in one transaction
func (r *postRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.revisions.DeleteByPostID(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&domain.Post{ID: id}).Association("Terms").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&domain.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrPostNotFound
		}
		return nil
	})
}
