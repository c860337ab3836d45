package roster

import (
	"context"

	"github.com/webstats/crm/pkg/entities"
	"gorm.io/gorm"
)

type Repository interface {
	ListTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, teamID uint) (entities.Team, error)
	PrimaryTeam(ctx context.Context) (entities.Team, error)
	ListPlayers(ctx context.Context, teamID uint) ([]entities.Player, error)
	FindPlayers(ctx context.Context, teamID uint, playerIDs []uint) ([]entities.Player, error)
	FindPlayer(ctx context.Context, playerID uint) (entities.Player, error)
	FindPlayerByName(ctx context.Context, teamID uint, name string) (entities.Player, error)
	CreatePlayer(ctx context.Context, player *entities.Player) error
	CurrentConvocation(ctx context.Context, teamID uint) (entities.ConvocationRecord, error)
	ReplaceConvocation(ctx context.Context, record *entities.ConvocationRecord) error
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) ListTeams(ctx context.Context) ([]entities.Team, error) {
	var teams []entities.Team
	err := r.db.WithContext(ctx).Order("name asc").Find(&teams).Error
	return teams, err
}

func (r *repository) FindTeam(ctx context.Context, teamID uint) (entities.Team, error) {
	var team entities.Team
	err := r.db.WithContext(ctx).First(&team, teamID).Error
	return team, err
}

func (r *repository) PrimaryTeam(ctx context.Context) (entities.Team, error) {
	var team entities.Team
	err := r.db.WithContext(ctx).Where("is_primary = ?", true).First(&team).Error
	return team, err
}

func (r *repository) ListPlayers(ctx context.Context, teamID uint) ([]entities.Player, error) {
	var players []entities.Player
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("number asc, name asc").
		Find(&players).Error
	return players, err
}

func (r *repository) FindPlayers(ctx context.Context, teamID uint, playerIDs []uint) ([]entities.Player, error) {
	var players []entities.Player
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND id IN ?", teamID, playerIDs).
		Find(&players).Error
	return players, err
}

func (r *repository) FindPlayer(ctx context.Context, playerID uint) (entities.Player, error) {
	var player entities.Player
	err := r.db.WithContext(ctx).Preload("Team").First(&player, playerID).Error
	return player, err
}

func (r *repository) FindPlayerByName(ctx context.Context, teamID uint, name string) (entities.Player, error) {
	var player entities.Player
	err := r.db.WithContext(ctx).Where("team_id = ? AND name = ?", teamID, name).First(&player).Error
	return player, err
}

func (r *repository) CreatePlayer(ctx context.Context, player *entities.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *repository) CurrentConvocation(ctx context.Context, teamID uint) (entities.ConvocationRecord, error) {
	var record entities.ConvocationRecord
	err := r.db.WithContext(ctx).
		Preload("Players").
		Where("team_id = ? AND is_current = ?", teamID, true).
		Order("created_at desc").
		First(&record).Error
	return record, err
}

// ReplaceConvocation marks previous call-ups replaced and stores the new one
// in a single transaction.
func (r *repository) ReplaceConvocation(ctx context.Context, record *entities.ConvocationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.ConvocationRecord{}).
			Where("team_id = ? AND is_current = ?", record.TeamID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		record.IsCurrent = true
		return tx.Create(record).Error
	})
}
