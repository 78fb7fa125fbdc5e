package domain

import "time"

// PostStatus publication state of a post
type PostStatus string

const (
	StatusDraft           PostStatus = "draft"
	StatusPendingApproval PostStatus = "pending_approval"
	StatusPublished       PostStatus = "published"
	StatusDeleted         PostStatus = "deleted"
	StatusSpam            PostStatus = "spam"
	StatusProfanity       PostStatus = "profanity"
)

// statusTransitions legal forward moves; deleted/spam/profanity are terminal,
// any workflow out of them belongs to the moderation side, not this core.
var statusTransitions = map[PostStatus][]PostStatus{
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusPublished},
	StatusPublished:       {StatusDeleted, StatusSpam, StatusProfanity},
}

// Valid reports whether s is a known status value
func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusPublished, StatusDeleted, StatusSpam, StatusProfanity:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
// Staying on the same status is always allowed.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	if s == next {
		return true
	}
	for _, t := range statusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Post represents a blog post
type Post struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title           string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Slug            string     `gorm:"column:slug;type:varchar(255);uniqueIndex" json:"slug"`
	Description     string     `gorm:"column:description;type:varchar(500)" json:"description"`
	Content         string     `gorm:"column:content;type:mediumtext" json:"content"`
	RenderedContent string     `gorm:"column:rendered_content;type:mediumtext" json:"rendered_content"`
	PostType        string     `gorm:"column:post_type;type:varchar(20);default:'post'" json:"post_type"`
	Status          PostStatus `gorm:"column:status;type:varchar(20);index" json:"status"`
	AuthorID        uint64     `gorm:"column:author_id;index" json:"author_id"`
	UpdatedBy       uint64     `gorm:"column:updated_by" json:"updated_by"`
	IsFeatured      bool       `gorm:"column:is_featured" json:"is_featured"`
	ShowCover       bool       `gorm:"column:show_cover" json:"show_cover"`
	CommentsAllowed bool       `gorm:"column:comments_allowed;default:true" json:"comments_allowed"`
	ReadingTime     int        `gorm:"column:reading_time" json:"reading_time"`
	Terms           []Term     `gorm:"many2many:post_terms;" json:"terms,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	PublishedAt     *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
}

func (Post) TableName() string { return "posts" }

// CreatePostRequest payload for creating a post
type CreatePostRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	Content         string     `json:"content" binding:"required"`
	PostType        string     `json:"post_type"`
	Status          PostStatus `json:"status"`
	IsFeatured      bool       `json:"is_featured"`
	ShowCover       bool       `json:"show_cover"`
	CommentsAllowed *bool      `json:"comments_allowed"`
	TermIDs         []uint64   `json:"term_ids"`
}

// UpdatePostRequest payload for editing a post. Zero-valued fields are left
// untouched; TermIDs == nil keeps the current term set.
type UpdatePostRequest struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	Content         string     `json:"content"`
	Status          PostStatus `json:"status"`
	IsFeatured      *bool      `json:"is_featured"`
	ShowCover       *bool      `json:"show_cover"`
	CommentsAllowed *bool      `json:"comments_allowed"`
	TermIDs         []uint64   `json:"term_ids"`
}

// PostResponse API representation of a post
type PostResponse struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	Content         string     `json:"content"`
	RenderedContent string     `json:"rendered_content"`
	PostType        string     `json:"post_type"`
	Status          PostStatus `json:"status"`
	AuthorID        uint64     `json:"author_id"`
	UpdatedBy       uint64     `json:"updated_by"`
	IsFeatured      bool       `json:"is_featured"`
	ShowCover       bool       `json:"show_cover"`
	CommentsAllowed bool       `json:"comments_allowed"`
	ReadingTime     int        `json:"reading_time"`
	Terms           []Term     `json:"terms,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

// ToResponse converts a Post to its API representation
func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.Description,
		Content:         p.Content,
		RenderedContent: p.RenderedContent,
		PostType:        p.PostType,
		Status:          p.Status,
		AuthorID:        p.AuthorID,
		UpdatedBy:       p.UpdatedBy,
		IsFeatured:      p.IsFeatured,
		ShowCover:       p.ShowCover,
		CommentsAllowed: p.CommentsAllowed,
		ReadingTime:     p.ReadingTime,
		Terms:           p.Terms,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		PublishedAt:     p.PublishedAt,
	}
}
