package service

import (
	"errors"
	"testing"

	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- Mock PostRepository ---

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) FindByID(id uint64) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) FindBySlug(slug string) (*domain.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) List(page, limit int) ([]*domain.Post, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) FindSlugsLike(base string) ([]string, error) {
	args := m.Called(base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockPostRepo) Create(post *domain.Post) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) Update(post *domain.Post, replaceTerms bool, retention int) error {
	return m.Called(post, replaceTerms, retention).Error(0)
}

func (m *mockPostRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Mock RevisionRepository ---

type mockRevisionRepo struct {
	mock.Mock
}

func (m *mockRevisionRepo) CreateInitial(tx *gorm.DB, postID uint64, content string, authorID uint64) error {
	return m.Called(tx, postID, content, authorID).Error(0)
}

func (m *mockRevisionRepo) Append(tx *gorm.DB, postID uint64, content string, authorID uint64, retention int) error {
	return m.Called(tx, postID, content, authorID, retention).Error(0)
}

func (m *mockRevisionRepo) DeleteByPostID(tx *gorm.DB, postID uint64) error {
	return m.Called(tx, postID).Error(0)
}

func (m *mockRevisionRepo) FindByPostID(postID uint64) ([]*domain.PostRevision, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PostRevision), args.Error(1)
}

func (m *mockRevisionRepo) FindLatest(postID uint64) (*domain.PostRevision, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostRevision), args.Error(1)
}

func (m *mockRevisionRepo) CountByPostID(postID uint64) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TermRepository ---

type mockTermRepo struct {
	mock.Mock
}

func (m *mockTermRepo) FindByIDs(ids []uint64) ([]domain.Term, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Term), args.Error(1)
}

func (m *mockTermRepo) FindBySlug(slug string) (*domain.Term, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}

func (m *mockTermRepo) List() ([]domain.Term, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Term), args.Error(1)
}

func (m *mockTermRepo) Create(term *domain.Term) error {
	return m.Called(term).Error(0)
}

// --- Stub settings ---

type stubSettings struct {
	retention int
	status    domain.PostStatus
}

func (s stubSettings) RevisionRetention() int { return s.retention }

func (s stubSettings) DefaultPostStatus() domain.PostStatus { return s.status }

func newTestService(posts *mockPostRepo, revisions *mockRevisionRepo, terms *mockTermRepo) PostService {
	return NewPostService(posts, revisions, terms, NewSlugResolver(posts), stubSettings{
		retention: 5,
		status:    domain.StatusPublished,
	})
}

var (
	author = domain.Actor{ID: 7, Roles: []domain.Role{domain.RoleAuthor}}
	admin  = domain.Actor{ID: 1, Roles: []domain.Role{domain.RoleAdmin}}
)

// --- Tests ---

func TestCreatePost_Success(t *testing.T) {
	posts := new(mockPostRepo)
	revisions := new(mockRevisionRepo)
	terms := new(mockTermRepo)
	svc := newTestService(posts, revisions, terms)

	posts.On("FindSlugsLike", "hello-world").Return([]string{}, nil)
	posts.On("Create", mock.AnythingOfType("*domain.Post")).Return(nil)

	req := &domain.CreatePostRequest{Title: "Hello, World!", Content: "Some content."}
	result, err := svc.CreatePost(req, author)

	assert.NoError(t, err)
	assert.Equal(t, "hello-world", result.Slug)
	assert.Equal(t, domain.StatusPublished, result.Status)
	assert.Equal(t, uint64(7), result.AuthorID)
	assert.NotNil(t, result.PublishedAt)
	assert.GreaterOrEqual(t, result.ReadingTime, 1)
	posts.AssertExpectations(t)
}

func TestCreatePost_TakenSlugGetsSuffix(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	posts.On("FindSlugsLike", "hello-world").Return([]string{"hello-world"}, nil)
	posts.On("Create", mock.AnythingOfType("*domain.Post")).Return(nil)

	req := &domain.CreatePostRequest{Title: "Hello, World!", Content: "body"}
	result, err := svc.CreatePost(req, author)

	assert.NoError(t, err)
	assert.Equal(t, "hello-world-1", result.Slug)
}

func TestCreatePost_EmptySlugRejected(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	req := &domain.CreatePostRequest{Title: "???", Content: "body"}
	result, err := svc.CreatePost(req, author)

	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Nil(t, result)
	posts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreatePost_RetriesAfterInsertRace(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	// First attempt loses the unique-index race, second succeeds
	posts.On("FindSlugsLike", "hello-world").Return([]string{}, nil).Once()
	posts.On("Create", mock.AnythingOfType("*domain.Post")).Return(common.ErrSlugConflict).Once()
	posts.On("FindSlugsLike", "hello-world").Return([]string{"hello-world"}, nil).Once()
	posts.On("Create", mock.AnythingOfType("*domain.Post")).Return(nil).Once()

	req := &domain.CreatePostRequest{Title: "Hello World", Content: "body"}
	result, err := svc.CreatePost(req, author)

	assert.NoError(t, err)
	assert.Equal(t, "hello-world-1", result.Slug)
	posts.AssertExpectations(t)
}

func TestCreatePost_SurfacesConflictAfterRetries(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	posts.On("FindSlugsLike", "hello-world").Return([]string{}, nil)
	posts.On("Create", mock.AnythingOfType("*domain.Post")).Return(common.ErrSlugConflict)

	req := &domain.CreatePostRequest{Title: "Hello World", Content: "body"}
	result, err := svc.CreatePost(req, author)

	assert.ErrorIs(t, err, common.ErrSlugConflict)
	assert.Nil(t, result)
	posts.AssertNumberOfCalls(t, "Create", 3)
}

func TestCreatePost_UnknownTermID(t *testing.T) {
	posts := new(mockPostRepo)
	terms := new(mockTermRepo)
	svc := newTestService(posts, new(mockRevisionRepo), terms)

	terms.On("FindByIDs", []uint64{5, 6}).Return([]domain.Term{{ID: 5}}, nil)

	req := &domain.CreatePostRequest{Title: "Hello", Content: "body", TermIDs: []uint64{5, 6}}
	_, err := svc.CreatePost(req, author)

	assert.ErrorIs(t, err, common.ErrInvalidInput)
	posts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdatePost_Success(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, Slug: "old", AuthorID: 7, Status: domain.StatusPublished}
	posts.On("FindByID", uint64(1)).Return(existing, nil)
	posts.On("Update", mock.AnythingOfType("*domain.Post"), false, 5).Return(nil)

	req := &domain.UpdatePostRequest{Title: "Updated", Content: "new body"}
	result, err := svc.UpdatePost(1, req, author)

	assert.NoError(t, err)
	assert.Equal(t, "Updated", result.Title)
	assert.Equal(t, uint64(7), result.UpdatedBy)
	posts.AssertExpectations(t)
}

func TestUpdatePost_NotFound(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	posts.On("FindByID", uint64(999)).Return(nil, common.ErrPostNotFound)

	_, err := svc.UpdatePost(999, &domain.UpdatePostRequest{Title: "x"}, author)
	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestUpdatePost_NotOwner(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 9, Status: domain.StatusPublished}
	posts.On("FindByID", uint64(1)).Return(existing, nil)

	_, err := svc.UpdatePost(1, &domain.UpdatePostRequest{Title: "hijack"}, author)
	assert.ErrorIs(t, err, common.ErrForbidden)
	posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePost_AdminOverridesOwnership(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 9, Status: domain.StatusPublished}
	posts.On("FindByID", uint64(1)).Return(existing, nil)
	posts.On("Update", mock.AnythingOfType("*domain.Post"), false, 5).Return(nil)

	_, err := svc.UpdatePost(1, &domain.UpdatePostRequest{Title: "moderated"}, admin)
	assert.NoError(t, err)
}

func TestUpdatePost_SlugConflictLeavesPostUntouched(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, Slug: "mine", AuthorID: 7, Status: domain.StatusPublished}
	other := &domain.Post{ID: 2, Slug: "taken"}
	posts.On("FindByID", uint64(1)).Return(existing, nil)
	posts.On("FindBySlug", "taken").Return(other, nil)

	_, err := svc.UpdatePost(1, &domain.UpdatePostRequest{Slug: "taken"}, author)
	assert.ErrorIs(t, err, common.ErrSlugConflict)
	posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePost_SlugConflictCheckedBeforePolicy(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, Slug: "mine", AuthorID: 9, Status: domain.StatusPublished}
	other := &domain.Post{ID: 2, Slug: "taken"}
	posts.On("FindByID", uint64(1)).Return(existing, nil)
	posts.On("FindBySlug", "taken").Return(other, nil)

	// Non-owner with a conflicting slug sees the conflict, not the denial
	_, err := svc.UpdatePost(1, &domain.UpdatePostRequest{Slug: "taken"}, author)
	assert.ErrorIs(t, err, common.ErrSlugConflict)
}

func TestUpdatePost_MalformedSlug(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, Slug: "mine", AuthorID: 7, Status: domain.StatusPublished}
	posts.On("FindByID", uint64(1)).Return(existing, nil)

	_, err := svc.UpdatePost(1, &domain.UpdatePostRequest{Slug: "Not A Slug!"}, author)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdatePost_IllegalStatusTransition(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 7, Status: domain.StatusDraft}
	posts.On("FindByID", uint64(1)).Return(existing, nil)

	// draft must pass through pending_approval before publishing
	_, err := svc.UpdatePost(1, &domain.UpdatePostRequest{Status: domain.StatusPublished}, author)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdatePost_PublishedToDeleted(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 7, Status: domain.StatusPublished}
	posts.On("FindByID", uint64(1)).Return(existing, nil)
	posts.On("Update", mock.AnythingOfType("*domain.Post"), false, 5).Return(nil)

	result, err := svc.UpdatePost(1, &domain.UpdatePostRequest{Status: domain.StatusDeleted}, author)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusDeleted, result.Status)
}

func TestDeletePost_Success(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 7}
	posts.On("FindByID", uint64(1)).Return(existing, nil)
	posts.On("Delete", uint64(1)).Return(nil)

	err := svc.DeletePost(1, author)
	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestDeletePost_NotOwner(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 9}
	posts.On("FindByID", uint64(1)).Return(existing, nil)

	err := svc.DeletePost(1, author)
	assert.ErrorIs(t, err, common.ErrForbidden)
	posts.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestListRevisions_PolicyGated(t *testing.T) {
	posts := new(mockPostRepo)
	revisions := new(mockRevisionRepo)
	svc := newTestService(posts, revisions, new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 9}
	posts.On("FindByID", uint64(1)).Return(existing, nil)

	_, err := svc.ListRevisions(1, author)
	assert.ErrorIs(t, err, common.ErrForbidden)
	revisions.AssertNotCalled(t, "FindByPostID", mock.Anything)
}

func TestListRevisions_Success(t *testing.T) {
	posts := new(mockPostRepo)
	revisions := new(mockRevisionRepo)
	svc := newTestService(posts, revisions, new(mockTermRepo))

	existing := &domain.Post{ID: 1, AuthorID: 7}
	history := []*domain.PostRevision{
		{ID: 3, PostID: 1, IsLatest: true},
		{ID: 2, PostID: 1},
	}
	posts.On("FindByID", uint64(1)).Return(existing, nil)
	revisions.On("FindByPostID", uint64(1)).Return(history, nil)

	result, err := svc.ListRevisions(1, author)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.True(t, result[0].IsLatest)
}

func TestListPosts_RepoError(t *testing.T) {
	posts := new(mockPostRepo)
	svc := newTestService(posts, new(mockRevisionRepo), new(mockTermRepo))

	posts.On("List", 1, 20).Return(nil, int64(0), errors.New("db error"))

	results, meta, err := svc.ListPosts(1, 20)
	assert.Error(t, err)
	assert.Nil(t, results)
	assert.Nil(t, meta)
}
