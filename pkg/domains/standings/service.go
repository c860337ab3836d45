package standings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
	"github.com/webstats/crm/pkg/utils"
	"gorm.io/gorm"
)

// LeagueRef names the structure a table of rows belongs to. Zero values fall
// back to the club defaults.
type LeagueRef struct {
	Competition string
	Season      string
	Group       string
}

func (l LeagueRef) withDefaults() LeagueRef {
	if l.Competition == "" {
		l.Competition = constant.DEFAULT_COMPETITION
	}
	if l.Season == "" {
		l.Season = constant.DEFAULT_SEASON
	}
	if l.Group == "" {
		l.Group = constant.DEFAULT_GROUP
	}
	return l
}

// League is the resolved structure rows attach to.
type League struct {
	Competition entities.Competition
	Season      entities.Season
	Group       entities.Group
}

type Service interface {
	EnsureLeagueStructure(ctx context.Context, ref LeagueRef) (League, error)
	UpdateStandings(ctx context.Context, rows []scraper.Row, ref LeagueRef) (int, error)
	Table(ctx context.Context) ([]dtos.StandingDTO, error)
}

type service struct {
	repository Repository
}

func NewService(r Repository) Service {
	return &service{
		repository: r,
	}
}

func (s *service) EnsureLeagueStructure(ctx context.Context, ref LeagueRef) (League, error) {
	ref = ref.withDefaults()

	source, err := s.repository.GetOrCreateDataSource(ctx, constant.DEFAULT_SOURCE_NAME, entities.DataSource{
		BaseURL: constant.DEFAULT_SOURCE_URL,
	})
	if err != nil {
		return League{}, err
	}

	competition, err := s.repository.GetOrCreateCompetition(ctx, ref.Competition, entities.Competition{
		Slug:     utils.Slugify(ref.Competition),
		Region:   constant.DEFAULT_REGION,
		Level:    constant.DEFAULT_LEVEL,
		SourceID: &source.ID,
	})
	if err != nil {
		return League{}, err
	}

	season, err := s.repository.GetOrCreateSeason(ctx, competition.ID, ref.Season, entities.Season{
		IsCurrent: true,
	})
	if err != nil {
		return League{}, err
	}

	group, err := s.repository.GetOrCreateGroup(ctx, season.ID, utils.Slugify(ref.Group), entities.Group{
		Name: ref.Group,
	})
	if err != nil {
		return League{}, err
	}

	return League{Competition: competition, Season: season, Group: group}, nil
}

// UpdateStandings upserts one TeamStanding per row and removes standings for
// teams absent from the table. Returns how many rows were applied.
func (s *service) UpdateStandings(ctx context.Context, rows []scraper.Row, ref LeagueRef) (int, error) {
	league, err := s.EnsureLeagueStructure(ctx, ref)
	if err != nil {
		return 0, err
	}

	var kept []uint
	applied := 0
	for idx, row := range rows {
		teamName := row.Get("equipo", "team", "club", "clubes")
		if teamName == "" {
			continue
		}

		team, err := s.upsertTeam(ctx, teamName, league.Group.ID)
		if err != nil {
			return applied, err
		}
		kept = append(kept, team.ID)

		wins := uint(utils.IntOr(row.Get("pg", "victorias", "wins"), 0))
		draws := uint(utils.IntOr(row.Get("pe", "empates", "draws"), 0))
		goalsFor := utils.IntOr(row.Get("gf", "golsfavor", "favor", "goalsfor"), 0)
		goalsAgainst := utils.IntOr(row.Get("gc", "golscontra", "contra", "goalsagainst"), 0)

		points, ok := utils.ParseInt(row.Get("pts", "pt", "points", "puntos"))
		if !ok {
			points = int(wins)*3 + int(draws)
		}
		diff, ok := utils.ParseInt(row.Get("dg", "dif", "goaldifference"))
		if !ok {
			diff = goalsFor - goalsAgainst
		}

		standing := entities.TeamStanding{
			SeasonID:       league.Season.ID,
			GroupID:        league.Group.ID,
			TeamID:         team.ID,
			Position:       uint(utils.IntOr(row.Get("pos", "posicion", "position", "puesto", "clasificacion"), idx+1)),
			Played:         uint(utils.IntOr(row.Get("pj", "jugados", "played"), 0)),
			Wins:           wins,
			Draws:          draws,
			Losses:         uint(utils.IntOr(row.Get("pp", "derrotas", "losses"), 0)),
			GoalsFor:       uint(goalsFor),
			GoalsAgainst:   uint(goalsAgainst),
			GoalDifference: diff,
			Points:         uint(points),
			LastUpdated:    time.Now(),
		}
		if err := s.repository.UpsertStanding(ctx, &standing); err != nil {
			return applied, err
		}
		applied++
	}

	if applied == 0 {
		return 0, fmt.Errorf(constant.CANT_FIND, "standings rows")
	}

	if err := s.repository.DeleteStandingsExcept(ctx, league.Group.ID, kept); err != nil {
		return applied, err
	}
	return applied, nil
}

func (s *service) upsertTeam(ctx context.Context, name string, groupID uint) (entities.Team, error) {
	slug := utils.Slugify(name)
	team, err := s.repository.FindTeamBySlug(ctx, slug)
	if err != nil && err != gorm.ErrRecordNotFound {
		return entities.Team{}, err
	}

	team.Name = name
	team.Slug = slug
	team.GroupID = &groupID
	if strings.Contains(slug, constant.PRIMARY_TEAM_KEYWORD) {
		team.IsPrimary = true
	}
	if err := s.repository.SaveTeam(ctx, &team); err != nil {
		return entities.Team{}, err
	}
	return team, nil
}

// Table serializes the current group's standings for the dashboard.
func (s *service) Table(ctx context.Context) ([]dtos.StandingDTO, error) {
	group, err := s.repository.CurrentGroup(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []dtos.StandingDTO{}, nil
		}
		return nil, err
	}

	standings, err := s.repository.ListStandings(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.StandingDTO, 0, len(standings))
	for _, st := range standings {
		out = append(out, dtos.StandingDTO{
			Position:       st.Position,
			Team:           st.Team.Name,
			Slug:           st.Team.Slug,
			IsPrimary:      st.Team.IsPrimary,
			Played:         st.Played,
			Wins:           st.Wins,
			Draws:          st.Draws,
			Losses:         st.Losses,
			GoalsFor:       st.GoalsFor,
			GoalsAgainst:   st.GoalsAgainst,
			GoalDifference: st.GoalDifference,
			Points:         st.Points,
			LastUpdated:    st.LastUpdated,
		})
	}
	return out, nil
}
