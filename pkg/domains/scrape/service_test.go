package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webstats/crm/pkg/database"
	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
	"gorm.io/gorm"
)

const scrapePage = `<table>
  <tr><th>Pos</th><th>Equipo</th><th>Pts</th><th>PJ</th><th>PG</th><th>PE</th><th>PP</th><th>GF</th><th>GC</th></tr>
  <tr><td>1</td><td>CD Benagalbón</td><td>25</td><td>10</td><td>8</td><td>1</td><td>1</td><td>21</td><td>7</td></tr>
  <tr><td>2</td><td>CD Rincón</td><td>22</td><td>10</td><td>7</td><td>1</td><td>2</td><td>18</td><td>9</td></tr>
</table>`

func testService(t *testing.T, ref standings.LeagueRef) (Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	st := standings.NewService(standings.NewRepo(db))
	return NewService(NewRepo(db), scraper.NewFetcher(), st, ref), db
}

func TestRefreshAppliesConfiguredLeague(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scrapePage))
	}))
	defer srv.Close()

	ref := standings.LeagueRef{Competition: "Primera Andaluza", Season: "2026/2027", Group: "Grupo 1"}
	svc, db := testService(t, ref)
	ctx := context.Background()

	require.NoError(t, svc.RegisterSource(ctx, "Federación", srv.URL))
	runs, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, entities.ScrapeStatusSuccess, runs[0].Status)

	var competition entities.Competition
	require.NoError(t, db.Where("name = ?", "Primera Andaluza").First(&competition).Error)

	var season entities.Season
	require.NoError(t, db.Where("competition_id = ? AND name = ?", competition.ID, "2026/2027").First(&season).Error)

	var count int64
	require.NoError(t, db.Model(&entities.TeamStanding{}).Where("season_id = ?", season.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRefreshWithoutSources(t *testing.T) {
	svc, _ := testService(t, standings.LeagueRef{})
	_, err := svc.Refresh(context.Background())
	assert.Error(t, err)
}

func TestRefreshRecordsFailedRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, _ := testService(t, standings.LeagueRef{})
	ctx := context.Background()
	require.NoError(t, svc.RegisterSource(ctx, "Caída", srv.URL))

	runs, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, entities.ScrapeStatusError, runs[0].Status)

	history, err := svc.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Caída", history[0].Source)
}
