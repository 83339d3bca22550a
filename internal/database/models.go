package database

import (
	"time"

	"gorm.io/gorm"
)

// Setting represents a key-value store for application settings
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// History records an embed that was installed in the player
type History struct {
	ID        uint      `gorm:"primaryKey"`
	MediaID   int       `gorm:"not null;index"`
	MediaType string    `gorm:"not null;index"` // movie, series
	Title     string    `gorm:"not null"`
	Season    int       `gorm:"default:0"`
	Episode   int       `gorm:"default:0"`
	EmbedURL  string    `gorm:"not null"`
	WatchedAt time.Time `gorm:"index;autoCreateTime"`
}

// TableName overrides the table name
func (History) TableName() string {
	return "history"
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Setting{},
		&History{},
	)
}
