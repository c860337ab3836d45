package entities

import (
	"time"

	"gorm.io/gorm"
)

const (
	ScrapeStatusRunning = "running"
	ScrapeStatusSuccess = "success"
	ScrapeStatusError   = "error"
)

// ScrapeSource is a registered URL the standings refresh pulls from.
type ScrapeSource struct {
	gorm.Model
	Name     string `json:"name" gorm:"type:varchar(150);uniqueIndex;not null"`
	URL      string `json:"url" gorm:"type:varchar(255);not null"`
	IsActive bool   `json:"is_active"`
}

// ScrapeRun is one execution of a scrape against a source.
type ScrapeRun struct {
	gorm.Model
	SourceID    uint       `json:"source_id" gorm:"not null;index"`
	Status      string     `json:"status" gorm:"type:varchar(12);default:running"`
	Message     string     `json:"message" gorm:"type:text"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relations
	Source ScrapeSource `json:"source" gorm:"foreignKey:SourceID"`
}

// DataImportLog records every file-based import (CSV standings, Excel reports).
type DataImportLog struct {
	gorm.Model
	BatchID    string    `json:"batch_id" gorm:"type:varchar(36);index"`
	FileName   string    `json:"file_name" gorm:"type:varchar(200);not null"`
	ImportedAt time.Time `json:"imported_at"`
	RowCount   *uint     `json:"row_count"`
	Notes      string    `json:"notes" gorm:"type:text"`
}
