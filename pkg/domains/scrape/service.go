package scrape

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
)

type Service interface {
	// Refresh scrapes every active source and feeds the rows into the
	// standings table. One ScrapeRun is recorded per source.
	Refresh(ctx context.Context) ([]dtos.ScrapeRunDTO, error)
	RegisterSource(ctx context.Context, name, url string) error
	History(ctx context.Context, limit int) ([]dtos.ScrapeRunDTO, error)
}

type service struct {
	repository Repository
	fetcher    *scraper.Fetcher
	standings  standings.Service
	league     standings.LeagueRef
}

// NewService wires scraping to the configured league structure; zero fields
// in ref fall back to the club defaults.
func NewService(r Repository, fetcher *scraper.Fetcher, st standings.Service, ref standings.LeagueRef) Service {
	return &service{
		repository: r,
		fetcher:    fetcher,
		standings:  st,
		league:     ref,
	}
}

func (s *service) RegisterSource(ctx context.Context, name, url string) error {
	if name == "" || url == "" {
		return fmt.Errorf("source name and url are required")
	}
	_, err := s.repository.GetOrCreateSource(ctx, name, entities.ScrapeSource{
		URL:      url,
		IsActive: true,
	})
	return err
}

func (s *service) Refresh(ctx context.Context) ([]dtos.ScrapeRunDTO, error) {
	sources, err := s.repository.ActiveSources(ctx)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no active scrape sources registered")
	}

	var results []dtos.ScrapeRunDTO
	for _, source := range sources {
		run := entities.ScrapeRun{
			SourceID:  source.ID,
			Status:    entities.ScrapeStatusRunning,
			StartedAt: time.Now(),
		}
		if err := s.repository.CreateRun(ctx, &run); err != nil {
			return results, err
		}

		rows, note, err := s.fetcher.Fetch(ctx, source.URL)
		if err == nil {
			var applied int
			applied, err = s.standings.UpdateStandings(ctx, rows, s.league)
			if err == nil {
				note = fmt.Sprintf("%s · %d teams", note, applied)
			}
		}

		now := time.Now()
		run.CompletedAt = &now
		if err != nil {
			run.Status = entities.ScrapeStatusError
			run.Message = err.Error()
			log.Printf("[error] scrape of %s failed: %v", source.Name, err)
		} else {
			run.Status = entities.ScrapeStatusSuccess
			run.Message = note
			log.Printf("[info] scrape of %s: %s", source.Name, note)
		}
		if err := s.repository.UpdateRun(ctx, &run); err != nil {
			return results, err
		}

		run.Source = source
		results = append(results, toDTO(run))
	}
	return results, nil
}

func (s *service) History(ctx context.Context, limit int) ([]dtos.ScrapeRunDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	runs, err := s.repository.RecentRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.ScrapeRunDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, toDTO(run))
	}
	return out, nil
}

func toDTO(run entities.ScrapeRun) dtos.ScrapeRunDTO {
	return dtos.ScrapeRunDTO{
		Source:      run.Source.Name,
		URL:         run.Source.URL,
		Status:      run.Status,
		Message:     run.Message,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
	}
}
