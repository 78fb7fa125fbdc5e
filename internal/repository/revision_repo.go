package repository

import (
	"github.com/plumecms/plume-backend/internal/domain"
	"gorm.io/gorm"
)

// EditorMarkdown editor/format tag recorded on every revision
const EditorMarkdown = "markdown"

// RevisionRepository maintains the revision history of posts. Write methods
// take the caller's transaction handle so a revision is never persisted
// outside the post mutation it belongs to.
type RevisionRepository interface {
	CreateInitial(tx *gorm.DB, postID uint64, content string, authorID uint64) error
	Append(tx *gorm.DB, postID uint64, content string, authorID uint64, retention int) error
	DeleteByPostID(tx *gorm.DB, postID uint64) error
	FindByPostID(postID uint64) ([]*domain.PostRevision, error)
	FindLatest(postID uint64) (*domain.PostRevision, error)
	CountByPostID(postID uint64) (int64, error)
}

type revisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

// CreateInitial inserts the very first revision of a post with is_latest set
func (r *revisionRepository) CreateInitial(tx *gorm.DB, postID uint64, content string, authorID uint64) error {
	rev := &domain.PostRevision{
		PostID:   postID,
		Content:  content,
		IsLatest: true,
		Editor:   EditorMarkdown,
		AuthorID: authorID,
	}
	return tx.Create(rev).Error
}

// Append demotes the current latest revision, inserts the new one as latest,
// and prunes rows beyond the newest `retention` in the same transaction so
// more than N revisions are never observable.
func (r *revisionRepository) Append(tx *gorm.DB, postID uint64, content string, authorID uint64, retention int) error {
	if retention < 1 {
		retention = 1
	}

	err := tx.Model(&domain.PostRevision{}).
		Where("post_id = ? AND is_latest = ?", postID, true).
		Update("is_latest", false).Error
	if err != nil {
		return err
	}

	rev := &domain.PostRevision{
		PostID:   postID,
		Content:  content,
		IsLatest: true,
		Editor:   EditorMarkdown,
		AuthorID: authorID,
	}
	if err := tx.Create(rev).Error; err != nil {
		return err
	}

	// Prune overflow, newest first. Ties on created_at break by id so the
	// just-inserted row always survives.
	var ids []uint64
	err = tx.Model(&domain.PostRevision{}).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) > retention {
		return tx.Delete(&domain.PostRevision{}, ids[retention:]).Error
	}
	return nil
}

// DeleteByPostID removes all revisions of a post (post delete cascade)
func (r *revisionRepository) DeleteByPostID(tx *gorm.DB, postID uint64) error {
	return tx.Where("post_id = ?", postID).Delete(&domain.PostRevision{}).Error
}

// FindByPostID returns all revisions of a post, newest first
func (r *revisionRepository) FindByPostID(postID uint64) ([]*domain.PostRevision, error) {
	var revisions []*domain.PostRevision
	err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&revisions).Error
	return revisions, err
}

// FindLatest returns the revision currently flagged as latest
func (r *revisionRepository) FindLatest(postID uint64) (*domain.PostRevision, error) {
	var revision domain.PostRevision
	err := r.db.Where("post_id = ? AND is_latest = ?", postID, true).
		First(&revision).Error
	if err != nil {
		return nil, err
	}
	return &revision, nil
}

// CountByPostID returns the number of persisted revisions for a post
func (r *revisionRepository) CountByPostID(postID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.PostRevision{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
