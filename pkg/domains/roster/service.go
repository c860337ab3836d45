package roster

import (
	"context"
	"fmt"

	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
	"gorm.io/gorm"
)

type Service interface {
	Teams(ctx context.Context) ([]entities.Team, error)
	TeamPlayers(ctx context.Context, teamID uint) ([]entities.Player, error)
	Player(ctx context.Context, playerID uint) (entities.Player, error)
	SaveConvocation(ctx context.Context, req dtos.ConvocationDTO) (*dtos.ConvocationResultDTO, error)
	CurrentConvocation(ctx context.Context) (*dtos.ConvocationResultDTO, error)
	// RivalAnalysis scouts an opposing squad from its federation page:
	// probable starting eleven plus scorer, minutes and card rankings.
	RivalAnalysis(ctx context.Context, teamURL string) (*dtos.RivalAnalysisDTO, error)
}

type service struct {
	repository Repository
	fetcher    *scraper.Fetcher
}

func NewService(r Repository, fetcher *scraper.Fetcher) Service {
	return &service{
		repository: r,
		fetcher:    fetcher,
	}
}

func (s *service) Teams(ctx context.Context) ([]entities.Team, error) {
	return s.repository.ListTeams(ctx)
}

func (s *service) TeamPlayers(ctx context.Context, teamID uint) ([]entities.Player, error) {
	if _, err := s.repository.FindTeam(ctx, teamID); err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "team")
	}
	return s.repository.ListPlayers(ctx, teamID)
}

func (s *service) Player(ctx context.Context, playerID uint) (entities.Player, error) {
	player, err := s.repository.FindPlayer(ctx, playerID)
	if err != nil {
		return entities.Player{}, fmt.Errorf(constant.CANT_FIND, "player")
	}
	return player, nil
}

// SaveConvocation stores a new call-up list for the primary team, replacing
// the previous current one.
func (s *service) SaveConvocation(ctx context.Context, req dtos.ConvocationDTO) (*dtos.ConvocationResultDTO, error) {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "primary team")
	}
	if len(req.PlayerIDs) == 0 {
		return nil, fmt.Errorf("select at least one player")
	}

	players, err := s.repository.FindPlayers(ctx, team.ID, req.PlayerIDs)
	if err != nil {
		return nil, err
	}
	if len(players) != len(req.PlayerIDs) {
		return nil, fmt.Errorf(constant.CANT_FIND, "some players")
	}

	record := entities.ConvocationRecord{
		TeamID:  team.ID,
		Players: players,
	}
	if err := s.repository.ReplaceConvocation(ctx, &record); err != nil {
		return nil, err
	}
	return convocationDTO(record), nil
}

func (s *service) CurrentConvocation(ctx context.Context) (*dtos.ConvocationResultDTO, error) {
	team, err := s.repository.PrimaryTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "primary team")
	}
	record, err := s.repository.CurrentConvocation(ctx, team.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return convocationDTO(record), nil
}

func (s *service) RivalAnalysis(ctx context.Context, teamURL string) (*dtos.RivalAnalysisDTO, error) {
	if teamURL == "" {
		return nil, fmt.Errorf("team url is required")
	}
	entries, err := s.fetcher.FetchRoster(ctx, teamURL)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf(constant.CANT_FIND, "rival roster")
	}
	return rivalAnalysisDTO(entries), nil
}

func convocationDTO(record entities.ConvocationRecord) *dtos.ConvocationResultDTO {
	out := dtos.ConvocationResultDTO{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
	}
	for _, p := range record.Players {
		out.Players = append(out.Players, dtos.ConvocationPlayerDTO{
			ID:       p.ID,
			Name:     p.Name,
			Number:   p.Number,
			Position: p.Position,
		})
	}
	return &out
}
