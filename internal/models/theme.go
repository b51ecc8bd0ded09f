package models

import "time"

// CurrentThemeName keys the single live theme record.
const CurrentThemeName = "current"

// Palette holds the style fields of a theme.
type Palette struct {
	Primary        string `json:"primary" gorm:"type:varchar(255);not null"`
	Secondary      string `json:"secondary" gorm:"type:varchar(255);not null"`
	Accent         string `json:"accent" gorm:"type:varchar(255);not null"`
	Background     string `json:"background" gorm:"type:varchar(255);not null"`
	CardBackground string `json:"cardBackground" gorm:"type:varchar(255);not null"`
	TextColor      string `json:"textColor" gorm:"type:varchar(255);not null"`
	BorderColor    string `json:"borderColor" gorm:"type:varchar(255);not null"`
	ThemeName      string `json:"themeName" gorm:"type:varchar(100);not null"`
}

// Theme is the live UI configuration row.
type Theme struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Palette   `gorm:"embedded"`
	Version   int       `json:"version" gorm:"not null;default:1"`
	UpdatedAt time.Time `json:"updatedAt"`
}
