package entities

import (
	"time"

	"gorm.io/gorm"
)

// DataSource identifies where league data was obtained from.
type DataSource struct {
	gorm.Model
	Name    string `json:"name" gorm:"type:varchar(120);uniqueIndex;not null"`
	BaseURL string `json:"base_url" gorm:"type:varchar(255)"`
	Notes   string `json:"notes" gorm:"type:text"`
}

type Competition struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(150);not null;uniqueIndex:idx_competition_name_region"`
	Slug        string `json:"slug" gorm:"type:varchar(150);not null"`
	Description string `json:"description" gorm:"type:text"`
	Level       uint   `json:"level"` // 1 = top tier, higher numbers = lower tiers
	Region      string `json:"region" gorm:"type:varchar(120);uniqueIndex:idx_competition_name_region"`
	SourceID    *uint  `json:"source_id"`

	// Relations
	Source *DataSource `json:"source,omitempty" gorm:"foreignKey:SourceID"`
}

type Season struct {
	gorm.Model
	CompetitionID uint       `json:"competition_id" gorm:"not null;uniqueIndex:idx_season_competition_name"`
	Name          string     `json:"name" gorm:"type:varchar(80);not null;uniqueIndex:idx_season_competition_name"` // e.g. 2025/2026
	StartDate     *time.Time `json:"start_date" gorm:"type:date"`
	EndDate       *time.Time `json:"end_date" gorm:"type:date"`
	IsCurrent     bool       `json:"is_current" gorm:"default:false"`

	// Relations
	Competition Competition `json:"competition" gorm:"foreignKey:CompetitionID"`
}

type Group struct {
	gorm.Model
	SeasonID   uint   `json:"season_id" gorm:"not null;uniqueIndex:idx_group_season_slug"`
	Name       string `json:"name" gorm:"type:varchar(80);not null"`
	Slug       string `json:"slug" gorm:"type:varchar(80);not null;uniqueIndex:idx_group_season_slug"`
	ExternalID string `json:"external_id" gorm:"type:varchar(80)"` // id used by the federation site

	// Relations
	Season Season `json:"season" gorm:"foreignKey:SeasonID"`
}
