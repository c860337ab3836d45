package dtos

import "time"

// StandingDTO is one row of the dashboard classification table.
type StandingDTO struct {
	Position       uint      `json:"position"`
	Team           string    `json:"team"`
	Slug           string    `json:"slug"`
	IsPrimary      bool      `json:"is_primary"`
	Played         uint      `json:"played"`
	Wins           uint      `json:"wins"`
	Draws          uint      `json:"draws"`
	Losses         uint      `json:"losses"`
	GoalsFor       uint      `json:"goals_for"`
	GoalsAgainst   uint      `json:"goals_against"`
	GoalDifference int       `json:"goal_difference"`
	Points         uint      `json:"points"`
	LastUpdated    time.Time `json:"last_updated"`
}

// ScrapeRunDTO summarizes one refresh execution for the dashboard history.
type ScrapeRunDTO struct {
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NextMatchDTO is the upcoming fixture card on the dashboard.
type NextMatchDTO struct {
	Round    string     `json:"round"`
	Date     *time.Time `json:"date"`
	Location string     `json:"location"`
	HomeTeam string     `json:"home_team"`
	AwayTeam string     `json:"away_team"`
}
