package domain

import "time"

// PostRevision stores an immutable content snapshot of a post. Exactly one
// revision per post carries IsLatest at any time; pruning keeps the newest N.
type PostRevision struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;index" json:"post_id"`
	Content   string    `gorm:"column:content;type:mediumtext" json:"content"`
	IsLatest  bool      `gorm:"column:is_latest;index" json:"is_latest"`
	Editor    string    `gorm:"column:editor;type:varchar(20)" json:"editor"`
	AuthorID  uint64    `gorm:"column:author_id" json:"author_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PostRevision) TableName() string { return "post_revisions" }
