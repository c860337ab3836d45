package dtos

import "time"

// DTO for recording a match action from the touch field
type MatchActionDTO struct {
	PlayerID    uint   `json:"player_id" binding:"required"`
	ActionType  string `json:"action_type" binding:"required"`
	Minute      *int   `json:"minute"`
	Result      string `json:"result"`
	Zone        string `json:"zone"`
	Tercio      string `json:"tercio"`
	Observation string `json:"observation"`
}

type MatchActionResponseDTO struct {
	ID     uint            `json:"id"`
	Minute *uint           `json:"minute"`
	Action string          `json:"action"`
	Zone   string          `json:"zone"`
	Result string          `json:"result"`
	Player ActionPlayerDTO `json:"player"`
}

type ActionPlayerDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

type FinalizeMatchDTO struct {
	HomeScore *uint `json:"home_score"`
	AwayScore *uint `json:"away_score"`
}

type FinalizeResultDTO struct {
	Saved   bool  `json:"saved"`
	Updated int64 `json:"updated"`
	MatchID uint  `json:"match_id"`
}

type MatchDTO struct {
	ID        uint       `json:"id"`
	Round     string     `json:"round"`
	Date      *time.Time `json:"date"`
	Location  string     `json:"location"`
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	HomeScore *uint      `json:"home_score"`
	AwayScore *uint      `json:"away_score"`
	Result    string     `json:"result"`
}

// PlayerMetricsDTO aggregates a player's confirmed events.
type PlayerMetricsDTO struct {
	PlayerID    uint   `json:"player_id"`
	Name        string `json:"name"`
	Number      *uint  `json:"number"`
	Position    string `json:"position"`
	Goals       uint   `json:"goals"`
	Assists     uint   `json:"assists"`
	YellowCards uint   `json:"yellow_cards"`
	RedCards    uint   `json:"red_cards"`
	Events      uint   `json:"events"`
}
