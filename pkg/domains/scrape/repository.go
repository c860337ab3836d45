package scrape

import (
	"context"

	"github.com/webstats/crm/pkg/entities"
	"gorm.io/gorm"
)

type Repository interface {
	GetOrCreateSource(ctx context.Context, name string, defaults entities.ScrapeSource) (entities.ScrapeSource, error)
	ActiveSources(ctx context.Context) ([]entities.ScrapeSource, error)
	CreateRun(ctx context.Context, run *entities.ScrapeRun) error
	UpdateRun(ctx context.Context, run *entities.ScrapeRun) error
	RecentRuns(ctx context.Context, limit int) ([]entities.ScrapeRun, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) GetOrCreateSource(ctx context.Context, name string, defaults entities.ScrapeSource) (entities.ScrapeSource, error) {
	var source entities.ScrapeSource
	defaults.Name = name
	err := r.db.WithContext(ctx).Where(entities.ScrapeSource{Name: name}).Attrs(defaults).FirstOrCreate(&source).Error
	return source, err
}

func (r *repository) ActiveSources(ctx context.Context) ([]entities.ScrapeSource, error) {
	var sources []entities.ScrapeSource
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name asc").Find(&sources).Error
	return sources, err
}

func (r *repository) CreateRun(ctx context.Context, run *entities.ScrapeRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) UpdateRun(ctx context.Context, run *entities.ScrapeRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *repository) RecentRuns(ctx context.Context, limit int) ([]entities.ScrapeRun, error) {
	var runs []entities.ScrapeRun
	err := r.db.WithContext(ctx).
		Preload("Source").
		Order("started_at desc").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
