package domain

import "time"

// Setting a single site option, one row per key. The set of valid keys and
// their value types is closed and enforced by the setting service.
type Setting struct {
	Key       string    `gorm:"column:key;type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"column:value;type:varchar(500)" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }
