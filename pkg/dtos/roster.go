package dtos

import "time"

// DTO for saving a convocation
type ConvocationDTO struct {
	PlayerIDs []uint `json:"player_ids" binding:"required"`
}

type ConvocationPlayerDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Number   *uint  `json:"number"`
	Position string `json:"position"`
}

type ConvocationResultDTO struct {
	ID        uint                   `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Players   []ConvocationPlayerDTO `json:"players"`
}

type RivalPlayerDTO struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Age         int    `json:"age"`
	Appearances int    `json:"appearances"`
	Starts      int    `json:"starts"`
	Minutes     int    `json:"minutes"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

// RivalAnalysisDTO is the pre-match scouting view of an opposing squad.
type RivalAnalysisDTO struct {
	SquadSize      int              `json:"squad_size"`
	ProbableEleven []RivalPlayerDTO `json:"probable_eleven"`
	TopScorers     []RivalPlayerDTO `json:"top_scorers"`
	MostMinutes    []RivalPlayerDTO `json:"most_minutes"`
	MostCards      []RivalPlayerDTO `json:"most_cards"`
}
