// Package importer loads standings CSVs and match workbooks into the
// database, leaving an audit trail in DataImportLog.
package importer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/webstats/crm/pkg/domains/roster"
	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	standings standings.Service
	roster    roster.Repository
}

func NewService(db *gorm.DB, st standings.Service, rosterRepo roster.Repository) *Service {
	return &Service{
		db:        db,
		standings: st,
		roster:    rosterRepo,
	}
}

// ImportStandingsCSV reads a header-keyed CSV file and applies it to the
// standings table, recording a manual scrape source and run.
func (s *Service) ImportStandingsCSV(ctx context.Context, path string, ref standings.LeagueRef, sourceName string) (int, error) {
	if sourceName == "" {
		sourceName = "Importación manual"
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	rows, err := scraper.ParseCSVRows(file)
	if err != nil {
		return 0, err
	}

	applied, err := s.standings.UpdateStandings(ctx, rows, ref)
	if err != nil {
		return 0, err
	}

	var source entities.ScrapeSource
	if err := s.db.WithContext(ctx).
		Where(entities.ScrapeSource{Name: sourceName}).
		Attrs(entities.ScrapeSource{URL: "file://" + path, IsActive: false}).
		FirstOrCreate(&source).Error; err != nil {
		return applied, err
	}

	now := time.Now()
	run := entities.ScrapeRun{
		SourceID:    source.ID,
		Status:      entities.ScrapeStatusSuccess,
		Message:     fmt.Sprintf("Manual · %s", filepath.Base(path)),
		StartedAt:   now,
		CompletedAt: &now,
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return applied, err
	}

	if err := s.logImport(ctx, filepath.Base(path), uint(len(rows)),
		fmt.Sprintf("standings import from %s", path)); err != nil {
		return applied, err
	}

	log.Printf("[info] imported %d standings rows from %s (run %d)", applied, filepath.Base(path), run.ID)
	return applied, nil
}

func (s *Service) logImport(ctx context.Context, fileName string, rowCount uint, notes string) error {
	entry := entities.DataImportLog{
		BatchID:    uuid.NewString(),
		FileName:   fileName,
		ImportedAt: time.Now(),
		RowCount:   &rowCount,
		Notes:      notes,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}
