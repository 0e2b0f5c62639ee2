package models

// SearchEngine is an external search provider. URL is the query prefix the
// search term gets appended to; the special value "local" filters bookmarks
// in the page instead of redirecting.
type SearchEngine struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	URL         string  `gorm:"not null" json:"url"`
	Icon        *string `json:"icon"`
	Placeholder *string `json:"placeholder"`
	SortOrder   int     `gorm:"not null;default:0" json:"sortOrder"`
	IsDefault   bool    `gorm:"not null;default:false" json:"isDefault"`
}
