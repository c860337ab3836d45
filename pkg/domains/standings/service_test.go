package standings

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webstats/crm/pkg/database"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
	"gorm.io/gorm"
)

func testService(t *testing.T) Service {
	s, _ := testServiceDB(t)
	return s
}

func testServiceDB(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return NewService(NewRepo(db)), db
}

func tableRows() []scraper.Row {
	return []scraper.Row{
		{"pos": "1", "equipo": "Rincón CF", "pj": "5", "pg": "4", "pe": "1", "pp": "0", "gf": "12", "gc": "3", "pts": "13"},
		{"pos": "2", "equipo": "C.D. Benagalbón", "pj": "5", "pg": "3", "pe": "1", "pp": "1", "gf": "9", "gc": "5", "pts": "10"},
		{"pos": "3", "equipo": "Atlético Torcal", "pj": "5", "pg": "0", "pe": "1", "pp": "4", "gf": "2", "gc": "15", "pts": "1"},
	}
}

func TestUpdateStandingsCreatesTable(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	applied, err := s.UpdateStandings(ctx, tableRows(), LeagueRef{})
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	table, err := s.Table(ctx)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "Rincón CF", table[0].Team)
	assert.Equal(t, uint(13), table[0].Points)
	assert.Equal(t, 9, table[0].GoalDifference)
	assert.True(t, table[1].IsPrimary, "club team should be flagged primary")
	assert.False(t, table[0].IsPrimary)
}

func TestUpdateStandingsUpsertsInPlace(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	_, err := s.UpdateStandings(ctx, tableRows(), LeagueRef{})
	require.NoError(t, err)

	// Second matchday: same teams, new numbers.
	rows := tableRows()
	rows[1]["pos"] = "1"
	rows[1]["pts"] = "13"
	rows[0]["pos"] = "2"

	applied, err := s.UpdateStandings(ctx, rows, LeagueRef{})
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	table, err := s.Table(ctx)
	require.NoError(t, err)
	require.Len(t, table, 3, "re-import must not duplicate rows")
	assert.Equal(t, "C.D. Benagalbón", table[0].Team)
}

func TestUpdateStandingsBackfillsPoints(t *testing.T) {
	s := testService(t)

	rows := []scraper.Row{
		{"equipo": "Rincón CF", "pg": "4", "pe": "1", "gf": "12", "gc": "3"},
	}
	_, err := s.UpdateStandings(context.Background(), rows, LeagueRef{})
	require.NoError(t, err)

	table, err := s.Table(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, uint(13), table[0].Points, "points derive from wins*3+draws when absent")
	assert.Equal(t, 9, table[0].GoalDifference)
}

func TestUpdateStandingsDropsVanishedTeams(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	_, err := s.UpdateStandings(ctx, tableRows(), LeagueRef{})
	require.NoError(t, err)

	_, err = s.UpdateStandings(ctx, tableRows()[:2], LeagueRef{})
	require.NoError(t, err)

	table, err := s.Table(ctx)
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestEnsureLeagueStructureRecordsDataSource(t *testing.T) {
	s, db := testServiceDB(t)

	league, err := s.EnsureLeagueStructure(context.Background(), LeagueRef{})
	require.NoError(t, err)
	require.NotNil(t, league.Competition.SourceID)

	var source entities.DataSource
	require.NoError(t, db.First(&source, *league.Competition.SourceID).Error)
	assert.Equal(t, "La Preferente", source.Name)
	assert.NotEmpty(t, source.BaseURL)

	// get-or-create: a second resolve reuses the same source row
	again, err := s.EnsureLeagueStructure(context.Background(), LeagueRef{Competition: "Otra Liga"})
	require.NoError(t, err)
	require.NotNil(t, again.Competition.SourceID)
	assert.Equal(t, *league.Competition.SourceID, *again.Competition.SourceID)
}

func TestUpdateStandingsRejectsEmptyTable(t *testing.T) {
	s := testService(t)

	_, err := s.UpdateStandings(context.Background(), nil, LeagueRef{})
	assert.Error(t, err)
}
