package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webstats/crm/pkg/database"
	"github.com/webstats/crm/pkg/domains/roster"
	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/entities"
	"gorm.io/gorm"
)

const standingsCSV = `Pos,Equipo,PJ,PG,PE,PP,GF,GC,Pts
1,Rincón CF,5,4,1,0,12,3,13
2,C.D. Benagalbón,5,3,1,1,9,5,10
`

func testImporter(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return NewService(db, standings.NewService(standings.NewRepo(db)), roster.NewRepo(db)), db
}

func TestImportStandingsCSV(t *testing.T) {
	svc, db := testImporter(t)

	path := filepath.Join(t.TempDir(), "clasificacion.csv")
	require.NoError(t, os.WriteFile(path, []byte(standingsCSV), 0644))

	applied, err := svc.ImportStandingsCSV(context.Background(), path, standings.LeagueRef{}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	var source entities.ScrapeSource
	require.NoError(t, db.Where("name = ?", "Importación manual").First(&source).Error)
	assert.False(t, source.IsActive, "manual sources must not join the scrape rotation")

	var run entities.ScrapeRun
	require.NoError(t, db.Where("source_id = ?", source.ID).First(&run).Error)
	assert.Equal(t, entities.ScrapeStatusSuccess, run.Status)
	assert.Contains(t, run.Message, "clasificacion.csv")

	var entry entities.DataImportLog
	require.NoError(t, db.First(&entry).Error)
	assert.NotEmpty(t, entry.BatchID)
	require.NotNil(t, entry.RowCount)
	assert.Equal(t, uint(2), *entry.RowCount)
}

func TestImportStandingsCSVMissingFile(t *testing.T) {
	svc, _ := testImporter(t)

	_, err := svc.ImportStandingsCSV(context.Background(), "/does/not/exist.csv", standings.LeagueRef{}, "")
	assert.Error(t, err)
}

func TestImportStandingsCSVEmptyFile(t *testing.T) {
	svc, _ := testImporter(t)

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Pos,Equipo,Pts\n"), 0644))

	_, err := svc.ImportStandingsCSV(context.Background(), path, standings.LeagueRef{}, "")
	assert.Error(t, err, "a header-only file has no rows to apply")
}
