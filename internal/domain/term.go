package domain

import "time"

// Term a taxonomy term (category or tag) attachable to posts
type Term struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(100);uniqueIndex" json:"slug"`
	Taxonomy  string    `gorm:"column:taxonomy;type:varchar(20);default:'tag'" json:"taxonomy"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Term) TableName() string { return "terms" }
