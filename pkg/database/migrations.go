package database

import (
	"github.com/webstats/crm/pkg/entities"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.DataSource{},
		&entities.Competition{},
		&entities.Season{},
		&entities.Group{},
		&entities.Team{},
		&entities.Player{},
		&entities.ConvocationRecord{},
		&entities.Match{},
		&entities.MatchEvent{},
		&entities.MatchReport{},
		&entities.TeamStanding{},
		&entities.TeamStatistic{},
		&entities.PlayerStatistic{},
		&entities.CustomMetric{},
		&entities.DataImportLog{},
		&entities.ScrapeSource{},
		&entities.ScrapeRun{},
		&entities.AnnouncementLog{},
	)
}
