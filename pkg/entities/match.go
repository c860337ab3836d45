package entities

import (
	"time"

	"gorm.io/gorm"
)

type Match struct {
	gorm.Model
	SeasonID   uint       `json:"season_id" gorm:"not null"`
	GroupID    *uint      `json:"group_id"`
	Round      string     `json:"round" gorm:"type:varchar(50)"` // jornada
	Date       *time.Time `json:"date" gorm:"type:date"`
	Location   string     `json:"location" gorm:"type:varchar(200)"`
	HomeTeamID *uint      `json:"home_team_id"`
	AwayTeamID *uint      `json:"away_team_id"`
	HomeScore  *uint      `json:"home_score"`
	AwayScore  *uint      `json:"away_score"`
	Result     string     `json:"result" gorm:"type:varchar(30)"`
	Notes      string     `json:"notes" gorm:"type:text"`
	Source     string     `json:"source" gorm:"type:varchar(255)"`

	// Relations
	Season   Season `json:"season" gorm:"foreignKey:SeasonID"`
	Group    *Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	HomeTeam *Team  `json:"home_team,omitempty" gorm:"foreignKey:HomeTeamID"`
	AwayTeam *Team  `json:"away_team,omitempty" gorm:"foreignKey:AwayTeamID"`
}

// MatchEvent is a single recorded action during a match (shot, duel, card...).
// Events start out pending and are confirmed when the match is finalized.
type MatchEvent struct {
	gorm.Model
	MatchID     uint   `json:"match_id" gorm:"not null;index"`
	PlayerID    *uint  `json:"player_id"`
	Minute      *uint  `json:"minute"`
	EventType   string `json:"event_type" gorm:"type:varchar(120);not null"`
	Result      string `json:"result" gorm:"type:varchar(120)"`
	Zone        string `json:"zone" gorm:"type:varchar(120)"`
	Tercio      string `json:"tercio" gorm:"type:varchar(120)"`
	Observation string `json:"observation" gorm:"type:varchar(255)"`
	System      string `json:"system" gorm:"type:varchar(120)"`
	SourceFile  string `json:"source_file" gorm:"type:varchar(200)"`
	RawData     string `json:"raw_data" gorm:"type:text"`
	IsConfirmed bool   `json:"is_confirmed" gorm:"default:false"`

	// Relations
	Match  Match   `json:"match" gorm:"foreignKey:MatchID"`
	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
}

// MatchReport records an imported match workbook and its raw payload.
type MatchReport struct {
	gorm.Model
	MatchID    *uint     `json:"match_id"`
	SourceFile string    `json:"source_file" gorm:"type:varchar(200);not null"`
	ImportedAt time.Time `json:"imported_at"`
	RawData    string    `json:"raw_data" gorm:"type:text"`

	// Relations
	Match *Match `json:"match,omitempty" gorm:"foreignKey:MatchID"`
}
