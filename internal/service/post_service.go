package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/plumecms/plume-backend/internal/repository"
)

// createRetries slug insert attempts before surfacing the conflict. The
// uniqueness check in the resolver is a read with no lock held, so a
// concurrent create targeting the same title can win the store's unique
// index; losing that race is retryable, not fatal.
const createRetries = 3

// SiteSettings the subset of site settings the orchestrator consults
type SiteSettings interface {
	RevisionRetention() int
	DefaultPostStatus() domain.PostStatus
}

// PostService business logic for the post lifecycle
type PostService interface {
	CreatePost(req *domain.CreatePostRequest, actor domain.Actor) (*domain.PostResponse, error)
	UpdatePost(id uint64, req *domain.UpdatePostRequest, actor domain.Actor) (*domain.PostResponse, error)
	DeletePost(id uint64, actor domain.Actor) error
	GetPost(id uint64) (*domain.PostResponse, error)
	GetPostBySlug(slug string) (*domain.PostResponse, error)
	ListPosts(page, limit int) ([]*domain.PostResponse, *common.Meta, error)
	ListRevisions(postID uint64, actor domain.Actor) ([]*domain.PostRevision, error)
}

type postService struct {
	posts     repository.PostRepository
	revisions repository.RevisionRepository
	terms     repository.TermRepository
	slugs     *SlugResolver
	settings  SiteSettings
}

// NewPostService creates a new PostService
func NewPostService(
	posts repository.PostRepository,
	revisions repository.RevisionRepository,
	terms repository.TermRepository,
	slugs *SlugResolver,
	settings SiteSettings,
) PostService {
	return &postService{
		posts:     posts,
		revisions: revisions,
		terms:     terms,
		slugs:     slugs,
		settings:  settings,
	}
}

// CreatePost resolves a slug for the title and persists the post together
// with its first revision in one transaction
func (s *postService) CreatePost(req *domain.CreatePostRequest, actor domain.Actor) (*domain.PostResponse, error) {
	status := req.Status
	if status == "" {
		status = s.settings.DefaultPostStatus()
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, common.ErrInvalidInput)
	}

	terms, err := s.resolveTerms(req.TermIDs)
	if err != nil {
		return nil, err
	}

	rendered := RenderMarkdown(req.Content)
	postType := req.PostType
	if postType == "" {
		postType = "post"
	}
	commentsAllowed := true
	if req.CommentsAllowed != nil {
		commentsAllowed = *req.CommentsAllowed
	}

	post := &domain.Post{
		Title:           req.Title,
		Description:     req.Description,
		Content:         req.Content,
		RenderedContent: rendered,
		PostType:        postType,
		Status:          status,
		AuthorID:        actor.ID,
		UpdatedBy:       actor.ID,
		IsFeatured:      req.IsFeatured,
		ShowCover:       req.ShowCover,
		CommentsAllowed: commentsAllowed,
		ReadingTime:     EstimateReadingTime(rendered),
		Terms:           terms,
	}
	if status == domain.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		slug, err := s.slugs.Resolve(req.Title)
		if err != nil {
			return nil, err
		}
		if slug == "" {
			return nil, fmt.Errorf("title %q yields an empty slug: %w", req.Title, common.ErrInvalidInput)
		}
		post.Slug = slug

		err = s.posts.Create(post)
		if err == nil {
			return post.ToResponse(), nil
		}
		if !errors.Is(err, common.ErrSlugConflict) {
			return nil, err
		}
		// Lost the insert race; re-resolve against the fresh slug set.
	}
	return nil, common.ErrSlugConflict
}

// UpdatePost applies an edit: slug-collision check, authorization, status
// transition check, field mutation and revision append, committed as one
// transaction
func (s *postService) UpdatePost(id uint64, req *domain.UpdatePostRequest, actor domain.Actor) (*domain.PostResponse, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Slug != "" && req.Slug != post.Slug {
		if Slugify(req.Slug) != req.Slug {
			return nil, fmt.Errorf("malformed slug %q: %w", req.Slug, common.ErrInvalidInput)
		}
		other, err := s.posts.FindBySlug(req.Slug)
		if err != nil && !errors.Is(err, common.ErrPostNotFound) {
			return nil, err
		}
		if other != nil && other.ID != post.ID {
			return nil, common.ErrSlugConflict
		}
		post.Slug = req.Slug
	}

	if !CanEditPost(actor.Roles, actor.ID, post.AuthorID) {
		return nil, common.ErrForbidden
	}

	if req.Status != "" && req.Status != post.Status {
		if !req.Status.Valid() || !post.Status.CanTransitionTo(req.Status) {
			return nil, fmt.Errorf("illegal status transition %s -> %s: %w", post.Status, req.Status, common.ErrInvalidInput)
		}
		post.Status = req.Status
		if req.Status == domain.StatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Description != "" {
		post.Description = req.Description
	}
	if req.Content != "" {
		post.Content = req.Content
		post.RenderedContent = RenderMarkdown(req.Content)
		post.ReadingTime = EstimateReadingTime(post.RenderedContent)
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.ShowCover != nil {
		post.ShowCover = *req.ShowCover
	}
	if req.CommentsAllowed != nil {
		post.CommentsAllowed = *req.CommentsAllowed
	}

	replaceTerms := req.TermIDs != nil
	if replaceTerms {
		terms, err := s.resolveTerms(req.TermIDs)
		if err != nil {
			return nil, err
		}
		post.Terms = terms
	}

	post.UpdatedBy = actor.ID

	if err := s.posts.Update(post, replaceTerms, s.settings.RevisionRetention()); err != nil {
		return nil, err
	}
	return post.ToResponse(), nil
}

// DeletePost removes a post and all its revisions after the policy check
func (s *postService) DeletePost(id uint64, actor domain.Actor) error {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return err
	}
	if !CanEditPost(actor.Roles, actor.ID, post.AuthorID) {
		return common.ErrForbidden
	}
	return s.posts.Delete(id)
}

// GetPost retrieves a single post by ID
func (s *postService) GetPost(id uint64) (*domain.PostResponse, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	return post.ToResponse(), nil
}

// GetPostBySlug retrieves a single post by slug
func (s *postService) GetPostBySlug(slug string) (*domain.PostResponse, error) {
	post, err := s.posts.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	return post.ToResponse(), nil
}

// ListPosts retrieves paginated posts
func (s *postService) ListPosts(page, limit int) ([]*domain.PostResponse, *common.Meta, error) {
	// Validate pagination
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, total, err := s.posts.List(page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = post.ToResponse()
	}

	meta := &common.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	}
	return responses, meta, nil
}

// ListRevisions returns the revision history of a post, newest first. The
// history exposes raw content, so the same edit policy gates it.
func (s *postService) ListRevisions(postID uint64, actor domain.Actor) ([]*domain.PostRevision, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if !CanEditPost(actor.Roles, actor.ID, post.AuthorID) {
		return nil, common.ErrForbidden
	}
	return s.revisions.FindByPostID(postID)
}

func (s *postService) resolveTerms(ids []uint64) ([]domain.Term, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	terms, err := s.terms.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(terms) != len(ids) {
		return nil, fmt.Errorf("unknown term id: %w", common.ErrInvalidInput)
	}
	return terms, nil
}
