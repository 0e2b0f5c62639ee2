package models

import "time"

// Tag is a single bookmark entry shown under its Category.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	URL         string    `gorm:"not null" json:"url"`
	Logo        *string   `json:"logo"`
	Description *string   `json:"description"`
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`
	SortOrder   int       `gorm:"not null;default:0;index" json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
