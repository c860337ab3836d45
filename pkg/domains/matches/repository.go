package matches

import (
	"context"
	"time"

	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/utils"
	"gorm.io/gorm"
)

type Repository interface {
	PrimaryTeam(ctx context.Context) (entities.Team, error)
	FindPlayer(ctx context.Context, teamID, playerID uint) (entities.Player, error)
	ActiveMatch(ctx context.Context, teamID uint) (entities.Match, error)
	NextMatch(ctx context.Context, teamID uint) (entities.Match, error)
	ListMatches(ctx context.Context, teamID uint) ([]entities.Match, error)
	PagedMatches(ctx context.Context, teamID uint, page int) ([]entities.Match, int, error)
	SaveMatch(ctx context.Context, match *entities.Match) error
	CreateEvent(ctx context.Context, event *entities.MatchEvent) error
	DeleteEvent(ctx context.Context, teamID, eventID uint) error
	ListEvents(ctx context.Context, matchID uint) ([]entities.MatchEvent, error)
	PendingEvents(ctx context.Context, matchID uint) ([]entities.MatchEvent, error)
	ConfirmEvents(ctx context.Context, eventIDs []uint) (int64, error)
	ConfirmedTeamEvents(ctx context.Context, teamID uint) ([]entities.MatchEvent, error)
	ReplaceMatchStatistics(ctx context.Context, matchID uint, stats []entities.PlayerStatistic) error
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) PrimaryTeam(ctx context.Context) (entities.Team, error) {
	var team entities.Team
	err := r.db.WithContext(ctx).Where("is_primary = ?", true).First(&team).Error
	return team, err
}

func (r *repository) FindPlayer(ctx context.Context, teamID, playerID uint) (entities.Player, error) {
	var player entities.Player
	err := r.db.WithContext(ctx).Where("team_id = ? AND id = ?", teamID, playerID).First(&player).Error
	return player, err
}

// ActiveMatch is the fixture actions are recorded against: today's match if
// there is one, otherwise the most recent unfinished one.
func (r *repository) ActiveMatch(ctx context.Context, teamID uint) (entities.Match, error) {
	var match entities.Match
	today := time.Now().Truncate(24 * time.Hour)
	err := r.db.WithContext(ctx).
		Preload("HomeTeam").Preload("AwayTeam").
		Where("(home_team_id = ? OR away_team_id = ?)", teamID, teamID).
		Where("date = ?", today).
		First(&match).Error
	if err == nil {
		return match, nil
	}
	if err != gorm.ErrRecordNotFound {
		return match, err
	}
	err = r.db.WithContext(ctx).
		Preload("HomeTeam").Preload("AwayTeam").
		Where("(home_team_id = ? OR away_team_id = ?)", teamID, teamID).
		Where("home_score IS NULL").
		Order("date asc").
		First(&match).Error
	return match, err
}

func (r *repository) NextMatch(ctx context.Context, teamID uint) (entities.Match, error) {
	var match entities.Match
	err := r.db.WithContext(ctx).
		Preload("HomeTeam").Preload("AwayTeam").
		Where("(home_team_id = ? OR away_team_id = ?)", teamID, teamID).
		Where("date >= ?", time.Now().Truncate(24*time.Hour)).
		Where("home_score IS NULL").
		Order("date asc").
		First(&match).Error
	return match, err
}

func (r *repository) ListMatches(ctx context.Context, teamID uint) ([]entities.Match, error) {
	var list []entities.Match
	err := r.db.WithContext(ctx).
		Preload("HomeTeam").Preload("AwayTeam").
		Where("(home_team_id = ? OR away_team_id = ?)", teamID, teamID).
		Order("date desc").
		Find(&list).Error
	return list, err
}

func (r *repository) PagedMatches(ctx context.Context, teamID uint, page int) ([]entities.Match, int, error) {
	var list []entities.Match
	totalPages, err := utils.Pagination(&list, page,
		r.db.Preload("HomeTeam").Preload("AwayTeam").Order("date desc"), ctx,
		"home_team_id = ? OR away_team_id = ?", teamID, teamID)
	if err != nil {
		return nil, 0, err
	}
	return list, totalPages, nil
}

func (r *repository) SaveMatch(ctx context.Context, match *entities.Match) error {
	return r.db.WithContext(ctx).Save(match).Error
}

func (r *repository) CreateEvent(ctx context.Context, event *entities.MatchEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) DeleteEvent(ctx context.Context, teamID, eventID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", eventID).
		Where("match_id IN (?)", r.db.Model(&entities.Match{}).
			Select("id").
			Where("home_team_id = ? OR away_team_id = ?", teamID, teamID)).
		Delete(&entities.MatchEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListEvents(ctx context.Context, matchID uint) ([]entities.MatchEvent, error) {
	var events []entities.MatchEvent
	err := r.db.WithContext(ctx).
		Preload("Player").
		Where("match_id = ?", matchID).
		Order("minute asc").
		Find(&events).Error
	return events, err
}

func (r *repository) PendingEvents(ctx context.Context, matchID uint) ([]entities.MatchEvent, error) {
	var events []entities.MatchEvent
	err := r.db.WithContext(ctx).
		Preload("Player").
		Where("match_id = ? AND is_confirmed = ?", matchID, false).
		Find(&events).Error
	return events, err
}

func (r *repository) ConfirmEvents(ctx context.Context, eventIDs []uint) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&entities.MatchEvent{}).
		Where("id IN ?", eventIDs).
		Update("is_confirmed", true)
	return result.RowsAffected, result.Error
}

func (r *repository) ConfirmedTeamEvents(ctx context.Context, teamID uint) ([]entities.MatchEvent, error) {
	var events []entities.MatchEvent
	err := r.db.WithContext(ctx).
		Preload("Player").
		Where("is_confirmed = ?", true).
		Where("player_id IN (?)", r.db.Model(&entities.Player{}).
			Select("id").
			Where("team_id = ?", teamID)).
		Find(&events).Error
	return events, err
}

// ReplaceMatchStatistics swaps the persisted per-player totals for a match.
func (r *repository) ReplaceMatchStatistics(ctx context.Context, matchID uint, stats []entities.PlayerStatistic) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", matchID).
			Delete(&entities.PlayerStatistic{}).Error; err != nil {
			return err
		}
		if len(stats) == 0 {
			return nil
		}
		return tx.Create(&stats).Error
	})
}
