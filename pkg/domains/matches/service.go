package matches

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/entities"
	"gorm.io/gorm"
)

type Service interface {
	RecordAction(ctx context.Context, req dtos.MatchActionDTO) (*dtos.MatchActionResponseDTO, error)
	DeleteAction(ctx context.Context, eventID uint) error
	Finalize(ctx context.Context, req dtos.FinalizeMatchDTO) (*dtos.FinalizeResultDTO, error)
	ListMatches(ctx context.Context, page int) ([]dtos.MatchDTO, int, error)
	MatchEvents(ctx context.Context, matchID uint) ([]entities.MatchEvent, error)
	NextMatch(ctx context.Context) (*dtos.NextMatchDTO, error)
	PlayerMetrics(ctx context.Context) ([]dtos.PlayerMetricsDTO, error)
}

type service struct {
	repository Repository
}

func NewService(r Repository) Service {
	return &service{
		repository: r,
	}
}

func (s *service) RecordAction(ctx context.Context, req dtos.MatchActionDTO) (*dtos.MatchActionResponseDTO, error) {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "primary team")
	}

	player, err := s.repository.FindPlayer(ctx, team.ID, req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "player")
	}

	match, err := s.repository.ActiveMatch(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "active match")
	}

	var minute *uint
	if req.Minute != nil {
		m := *req.Minute
		// clamp to regulation plus extra time
		if m < 0 {
			m = 0
		}
		if m > 120 {
			m = 120
		}
		u := uint(m)
		minute = &u
	}

	tercio := ZoneToTercio(req.Zone)
	if tercio == "" {
		tercio = req.Tercio
	}

	event := entities.MatchEvent{
		MatchID:     match.ID,
		PlayerID:    &player.ID,
		Minute:      minute,
		EventType:   req.ActionType,
		Result:      req.Result,
		Zone:        req.Zone,
		Tercio:      tercio,
		Observation: req.Observation,
		SourceFile:  "registro-acciones",
		System:      "touch-field",
	}
	if err := s.repository.CreateEvent(ctx, &event); err != nil {
		return nil, err
	}

	number := "--"
	if player.Number != nil {
		number = strconv.FormatUint(uint64(*player.Number), 10)
	}
	return &dtos.MatchActionResponseDTO{
		ID:     event.ID,
		Minute: event.Minute,
		Action: event.EventType,
		Zone:   event.Zone,
		Result: event.Result,
		Player: dtos.ActionPlayerDTO{
			ID:     player.ID,
			Name:   player.Name,
			Number: number,
		},
	}, nil
}

func (s *service) DeleteAction(ctx context.Context, eventID uint) error {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return fmt.Errorf(constant.CANT_FIND, "primary team")
	}
	if err := s.repository.DeleteEvent(ctx, team.ID, eventID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf(constant.CANT_FIND, "event")
		}
		return err
	}
	return nil
}

// Finalize confirms the active match's pending events and stamps the final
// score when one is provided.
func (s *service) Finalize(ctx context.Context, req dtos.FinalizeMatchDTO) (*dtos.FinalizeResultDTO, error) {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "primary team")
	}
	match, err := s.repository.ActiveMatch(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "active match")
	}

	pending, err := s.repository.PendingEvents(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(pending))
	for _, e := range pending {
		ids = append(ids, e.ID)
	}
	updated, err := s.repository.ConfirmEvents(ctx, ids)
	if err != nil {
		return nil, err
	}

	if req.HomeScore != nil && req.AwayScore != nil {
		match.HomeScore = req.HomeScore
		match.AwayScore = req.AwayScore
		match.Result = fmt.Sprintf("%d-%d", *req.HomeScore, *req.AwayScore)
		if err := s.repository.SaveMatch(ctx, &match); err != nil {
			return nil, err
		}
	}

	if err := s.persistStatistics(ctx, match); err != nil {
		return nil, err
	}

	return &dtos.FinalizeResultDTO{Saved: true, Updated: updated, MatchID: match.ID}, nil
}

// persistStatistics folds the match's confirmed events into PlayerStatistic
// rows, replacing whatever a previous finalize stored.
func (s *service) persistStatistics(ctx context.Context, match entities.Match) error {
	events, err := s.repository.ListEvents(ctx, match.ID)
	if err != nil {
		return err
	}

	type totals struct{ goals, assists float64 }
	byPlayer := map[uint]*totals{}
	for _, e := range events {
		if !e.IsConfirmed || e.PlayerID == nil {
			continue
		}
		tt, ok := byPlayer[*e.PlayerID]
		if !ok {
			tt = &totals{}
			byPlayer[*e.PlayerID] = tt
		}
		switch {
		case IsGoalEvent(e.EventType, e.Result, e.Observation):
			tt.goals++
		case IsAssistEvent(e.EventType, e.Result, e.Observation):
			tt.assists++
		}
	}

	var stats []entities.PlayerStatistic
	for playerID, tt := range byPlayer {
		for name, value := range map[string]float64{"goals": tt.goals, "assists": tt.assists} {
			if value == 0 {
				continue
			}
			stats = append(stats, entities.PlayerStatistic{
				PlayerID: playerID,
				SeasonID: match.SeasonID,
				MatchID:  &match.ID,
				Name:     name,
				Value:    value,
				Context:  "match",
			})
		}
	}
	return s.repository.ReplaceMatchStatistics(ctx, match.ID, stats)
}

// ListMatches returns the primary team's fixtures, newest first. A positive
// page selects one page of ten; zero returns everything.
func (s *service) ListMatches(ctx context.Context, page int) ([]dtos.MatchDTO, int, error) {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf(constant.CANT_FIND, "primary team")
	}

	var (
		list       []entities.Match
		totalPages = 1
	)
	if page > 0 {
		list, totalPages, err = s.repository.PagedMatches(ctx, team.ID, page)
	} else {
		list, err = s.repository.ListMatches(ctx, team.ID)
	}
	if err != nil {
		return nil, 0, err
	}

	out := make([]dtos.MatchDTO, 0, len(list))
	for _, m := range list {
		out = append(out, toMatchDTO(m))
	}
	return out, totalPages, nil
}

func (s *service) MatchEvents(ctx context.Context, matchID uint) ([]entities.MatchEvent, error) {
	return s.repository.ListEvents(ctx, matchID)
}

func (s *service) NextMatch(ctx context.Context) (*dtos.NextMatchDTO, error) {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return nil, nil
	}
	match, err := s.repository.NextMatch(ctx, team.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	dto := dtos.NextMatchDTO{
		Round:    match.Round,
		Date:     match.Date,
		Location: match.Location,
	}
	if match.HomeTeam != nil {
		dto.HomeTeam = match.HomeTeam.Name
	}
	if match.AwayTeam != nil {
		dto.AwayTeam = match.AwayTeam.Name
	}
	return &dto, nil
}

// PlayerMetrics folds the squad's confirmed events into per-player totals.
func (s *service) PlayerMetrics(ctx context.Context) ([]dtos.PlayerMetricsDTO, error) {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "primary team")
	}
	events, err := s.repository.ConfirmedTeamEvents(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	byPlayer := map[uint]*dtos.PlayerMetricsDTO{}
	for _, e := range events {
		if e.PlayerID == nil || e.Player == nil {
			continue
		}
		m, ok := byPlayer[*e.PlayerID]
		if !ok {
			m = &dtos.PlayerMetricsDTO{
				PlayerID: e.Player.ID,
				Name:     e.Player.Name,
				Number:   e.Player.Number,
				Position: e.Player.Position,
			}
			byPlayer[*e.PlayerID] = m
		}
		m.Events++
		switch {
		case IsGoalEvent(e.EventType, e.Result, e.Observation):
			m.Goals++
		case IsAssistEvent(e.EventType, e.Result, e.Observation):
			m.Assists++
		case IsRedCardEvent(e.EventType, e.Result, e.Zone):
			m.RedCards++
		case IsYellowCardEvent(e.EventType, e.Result, e.Zone):
			m.YellowCards++
		}
	}

	out := make([]dtos.PlayerMetricsDTO, 0, len(byPlayer))
	for _, m := range byPlayer {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func toMatchDTO(m entities.Match) dtos.MatchDTO {
	dto := dtos.MatchDTO{
		ID:        m.ID,
		Round:     m.Round,
		Date:      m.Date,
		Location:  m.Location,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Result:    m.Result,
	}
	if m.HomeTeam != nil {
		dto.HomeTeam = m.HomeTeam.Name
	}
	if m.AwayTeam != nil {
		dto.AwayTeam = m.AwayTeam.Name
	}
	return dto
}
