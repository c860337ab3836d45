package entities

import (
	"time"

	"gorm.io/gorm"
)

type TeamStanding struct {
	gorm.Model
	SeasonID       uint      `json:"season_id" gorm:"not null;uniqueIndex:idx_standing_season_group_team"`
	GroupID        uint      `json:"group_id" gorm:"not null;uniqueIndex:idx_standing_season_group_team"`
	TeamID         uint      `json:"team_id" gorm:"not null;uniqueIndex:idx_standing_season_group_team"`
	Position       uint      `json:"position" gorm:"not null"`
	Played         uint      `json:"played" gorm:"default:0"`
	Wins           uint      `json:"wins" gorm:"default:0"`
	Draws          uint      `json:"draws" gorm:"default:0"`
	Losses         uint      `json:"losses" gorm:"default:0"`
	GoalsFor       uint      `json:"goals_for" gorm:"default:0"`
	GoalsAgainst   uint      `json:"goals_against" gorm:"default:0"`
	GoalDifference int       `json:"goal_difference" gorm:"default:0"`
	Points         uint      `json:"points" gorm:"default:0"`
	LastUpdated    time.Time `json:"last_updated"`

	// Relations
	Season Season `json:"season" gorm:"foreignKey:SeasonID"`
	Group  Group  `json:"group" gorm:"foreignKey:GroupID"`
	Team   Team   `json:"team" gorm:"foreignKey:TeamID"`
}

type TeamStatistic struct {
	gorm.Model
	TeamID   uint    `json:"team_id" gorm:"not null;uniqueIndex:idx_team_stat"`
	SeasonID uint    `json:"season_id" gorm:"not null;uniqueIndex:idx_team_stat"`
	Name     string  `json:"name" gorm:"type:varchar(120);not null;uniqueIndex:idx_team_stat"` // e.g. possession, shots on target
	Value    float64 `json:"value"`
	Context  string  `json:"context" gorm:"type:varchar(120);uniqueIndex:idx_team_stat"`
	SourceID *uint   `json:"source_id"`

	// Relations
	Team   Team        `json:"team" gorm:"foreignKey:TeamID"`
	Season Season      `json:"season" gorm:"foreignKey:SeasonID"`
	Source *DataSource `json:"source,omitempty" gorm:"foreignKey:SourceID"`
}

type PlayerStatistic struct {
	gorm.Model
	PlayerID uint    `json:"player_id" gorm:"not null;uniqueIndex:idx_player_stat"`
	SeasonID uint    `json:"season_id" gorm:"not null;uniqueIndex:idx_player_stat"`
	MatchID  *uint   `json:"match_id" gorm:"uniqueIndex:idx_player_stat"`
	Name     string  `json:"name" gorm:"type:varchar(120);not null;uniqueIndex:idx_player_stat"` // goal, assist, minutes played...
	Value    float64 `json:"value"`
	Context  string  `json:"context" gorm:"type:varchar(120);uniqueIndex:idx_player_stat"`
	SourceID *uint   `json:"source_id"`

	// Relations
	Player Player      `json:"player" gorm:"foreignKey:PlayerID"`
	Season Season      `json:"season" gorm:"foreignKey:SeasonID"`
	Match  *Match      `json:"match,omitempty" gorm:"foreignKey:MatchID"`
	Source *DataSource `json:"source,omitempty" gorm:"foreignKey:SourceID"`
}

// CustomMetric stores hand-recorded team metrics that have no fixed catalog.
type CustomMetric struct {
	gorm.Model
	TeamID      uint      `json:"team_id" gorm:"not null"`
	SeasonID    uint      `json:"season_id" gorm:"not null"`
	Name        string    `json:"name" gorm:"type:varchar(120);not null"`
	Value       float64   `json:"value"`
	RecordedAt  time.Time `json:"recorded_at"`
	SourceNotes string    `json:"source_notes" gorm:"type:text"`

	// Relations
	Team   Team   `json:"team" gorm:"foreignKey:TeamID"`
	Season Season `json:"season" gorm:"foreignKey:SeasonID"`
}
