package standings

import (
	"context"

	"github.com/webstats/crm/pkg/entities"
	"gorm.io/gorm"
)

type Repository interface {
	GetOrCreateDataSource(ctx context.Context, name string, defaults entities.DataSource) (entities.DataSource, error)
	GetOrCreateCompetition(ctx context.Context, name string, defaults entities.Competition) (entities.Competition, error)
	GetOrCreateSeason(ctx context.Context, competitionID uint, name string, defaults entities.Season) (entities.Season, error)
	GetOrCreateGroup(ctx context.Context, seasonID uint, slug string, defaults entities.Group) (entities.Group, error)
	FindTeamBySlug(ctx context.Context, slug string) (entities.Team, error)
	SaveTeam(ctx context.Context, team *entities.Team) error
	UpsertStanding(ctx context.Context, standing *entities.TeamStanding) error
	DeleteStandingsExcept(ctx context.Context, groupID uint, teamIDs []uint) error
	ListStandings(ctx context.Context, groupID uint) ([]entities.TeamStanding, error)
	CurrentGroup(ctx context.Context) (entities.Group, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) GetOrCreateDataSource(ctx context.Context, name string, defaults entities.DataSource) (entities.DataSource, error) {
	var source entities.DataSource
	defaults.Name = name
	err := r.db.WithContext(ctx).Where(entities.DataSource{Name: name}).Attrs(defaults).FirstOrCreate(&source).Error
	return source, err
}

func (r *repository) GetOrCreateCompetition(ctx context.Context, name string, defaults entities.Competition) (entities.Competition, error) {
	var competition entities.Competition
	defaults.Name = name
	err := r.db.WithContext(ctx).Where(entities.Competition{Name: name}).Attrs(defaults).FirstOrCreate(&competition).Error
	return competition, err
}

func (r *repository) GetOrCreateSeason(ctx context.Context, competitionID uint, name string, defaults entities.Season) (entities.Season, error) {
	var season entities.Season
	defaults.CompetitionID = competitionID
	defaults.Name = name
	err := r.db.WithContext(ctx).
		Where(entities.Season{CompetitionID: competitionID, Name: name}).
		Attrs(defaults).
		FirstOrCreate(&season).Error
	return season, err
}

func (r *repository) GetOrCreateGroup(ctx context.Context, seasonID uint, slug string, defaults entities.Group) (entities.Group, error) {
	var group entities.Group
	defaults.SeasonID = seasonID
	defaults.Slug = slug
	err := r.db.WithContext(ctx).
		Where(entities.Group{SeasonID: seasonID, Slug: slug}).
		Attrs(defaults).
		FirstOrCreate(&group).Error
	return group, err
}

func (r *repository) FindTeamBySlug(ctx context.Context, slug string) (entities.Team, error) {
	var team entities.Team
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&team).Error
	return team, err
}

func (r *repository) SaveTeam(ctx context.Context, team *entities.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *repository) UpsertStanding(ctx context.Context, standing *entities.TeamStanding) error {
	var existing entities.TeamStanding
	err := r.db.WithContext(ctx).
		Where("season_id = ? AND group_id = ? AND team_id = ?", standing.SeasonID, standing.GroupID, standing.TeamID).
		First(&existing).Error
	if err == nil {
		standing.ID = existing.ID
		standing.CreatedAt = existing.CreatedAt
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Save(standing).Error
}

// DeleteStandingsExcept drops standings for teams no longer present in the
// imported table, so renamed or withdrawn clubs do not linger.
func (r *repository) DeleteStandingsExcept(ctx context.Context, groupID uint, teamIDs []uint) error {
	if len(teamIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("group_id = ? AND team_id NOT IN ?", groupID, teamIDs).
		Delete(&entities.TeamStanding{}).Error
}

func (r *repository) ListStandings(ctx context.Context, groupID uint) ([]entities.TeamStanding, error) {
	var standings []entities.TeamStanding
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("group_id = ?", groupID).
		Order("position asc").
		Find(&standings).Error
	return standings, err
}

// CurrentGroup returns the group attached to the current season.
func (r *repository) CurrentGroup(ctx context.Context) (entities.Group, error) {
	var group entities.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN seasons ON seasons.id = groups.season_id AND seasons.is_current = ?", true).
		Order("groups.id desc").
		First(&group).Error
	return group, err
}
