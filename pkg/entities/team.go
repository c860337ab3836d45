package entities

import (
	"gorm.io/gorm"
)

type Team struct {
	gorm.Model
	Name       string `json:"name" gorm:"type:varchar(150);not null"`
	Slug       string `json:"slug" gorm:"type:varchar(150);uniqueIndex;not null"`
	ShortName  string `json:"short_name" gorm:"type:varchar(60)"`
	City       string `json:"city" gorm:"type:varchar(100)"`
	GroupID    *uint  `json:"group_id"`
	ExternalID string `json:"external_id" gorm:"type:varchar(120)"` // official id on the federation site
	IsPrimary  bool   `json:"is_primary" gorm:"default:false"`      // true for the club's own team

	// Relations
	Group   *Group   `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Players []Player `json:"players,omitempty" gorm:"foreignKey:TeamID"`
}

type Player struct {
	gorm.Model
	TeamID   uint   `json:"team_id" gorm:"not null;uniqueIndex:idx_player_team_name"`
	Name     string `json:"name" gorm:"type:varchar(120);not null;uniqueIndex:idx_player_team_name"`
	Number   *uint  `json:"number"`
	Position string `json:"position" gorm:"type:varchar(60)"`
	Phone    string `json:"phone" gorm:"type:varchar(20)"`
	IsActive bool   `json:"is_active"`
	Notes    string `json:"notes" gorm:"type:text"`

	// Relations
	Team Team `json:"team" gorm:"foreignKey:TeamID"`
}

// ConvocationRecord is a call-up list for a match day. Only one record per
// team is current at a time; saving a new one replaces the previous.
type ConvocationRecord struct {
	gorm.Model
	TeamID    uint `json:"team_id" gorm:"not null"`
	IsCurrent bool `json:"is_current"`

	// Relations
	Team    Team     `json:"team" gorm:"foreignKey:TeamID"`
	Players []Player `json:"players" gorm:"many2many:convocation_players;"`
}
