package models

import "time"

// Setting stores one opaque key/value entry. ID is the key.
type Setting struct {
	ID        string    `gorm:"primaryKey;size:255" json:"id"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Well-known setting keys read by the front end.
const (
	SettingBackgroundImage = "backgroundImage"
	SettingSystemTitle     = "systemTitle"
	SettingFaviconURL      = "faviconUrl"
	SettingSearchEngines   = "searchEngines"
)
