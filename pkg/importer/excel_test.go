package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/entities"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	wb := excelize.NewFile()
	_, err := wb.NewSheet(eventsSheet)
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(eventsSheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "jornada5.xlsx")
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())
	return path
}

func eventRows() [][]interface{} {
	return [][]interface{}{
		{"PARTIDO_ID", "RIVAL", "JORNADA", "FECHA", "JUGADOR", "MINUTO", "EVENTO", "RESULTADO_ACCION", "ZONA", "TERCIO", "SISTEMA"},
		{"5", "Rincón CF", "Jornada 5", "2026-03-15", "García", "12", "Gol de jugada", "Ganó", "Zona 3", "Ataque", "excel"},
		{"5", "Rincón CF", "Jornada 5", "2026-03-15", "Pérez", "34", "Tarjeta amarilla", "", "Zona 2", "Construcción", "excel"},
		{"5", "Rincón CF", "Jornada 5", "2026-03-15", "García", "78", "Asistencia de gol", "Ganó", "Zona 3", "Ataque", "excel"},
	}
}

func TestImportMatchWorkbook(t *testing.T) {
	svc, db := testImporter(t)
	path := writeWorkbook(t, eventRows())

	created, err := svc.ImportMatchWorkbook(context.Background(), path, standings.LeagueRef{})
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	var match entities.Match
	require.NoError(t, db.First(&match).Error)
	assert.Equal(t, "Jornada 5", match.Round)
	require.NotNil(t, match.Date)
	assert.Equal(t, "2026-03-15", match.Date.Format("2006-01-02"))

	var opponent entities.Team
	require.NoError(t, db.Where("slug = ?", "rincon-cf").First(&opponent).Error)
	assert.False(t, opponent.IsPrimary)

	var players []entities.Player
	require.NoError(t, db.Order("name asc").Find(&players).Error)
	require.Len(t, players, 2)
	assert.Equal(t, "García", players[0].Name)

	var events []entities.MatchEvent
	require.NoError(t, db.Order("minute asc").Find(&events).Error)
	require.Len(t, events, 3)
	assert.True(t, events[0].IsConfirmed)
	assert.Equal(t, "Gol de jugada", events[0].EventType)
	assert.Equal(t, "jornada5.xlsx", events[0].SourceFile)

	var report entities.MatchReport
	require.NoError(t, db.First(&report).Error)
	assert.Equal(t, "jornada5.xlsx", report.SourceFile)
	assert.Contains(t, report.RawData, eventsSheet)
}

func TestImportMatchWorkbookIsRepeatable(t *testing.T) {
	svc, db := testImporter(t)
	path := writeWorkbook(t, eventRows())
	ctx := context.Background()

	_, err := svc.ImportMatchWorkbook(ctx, path, standings.LeagueRef{})
	require.NoError(t, err)
	_, err = svc.ImportMatchWorkbook(ctx, path, standings.LeagueRef{})
	require.NoError(t, err)

	var eventCount int64
	require.NoError(t, db.Model(&entities.MatchEvent{}).Count(&eventCount).Error)
	assert.Equal(t, int64(3), eventCount, "re-import replaces the file's events")

	var matchCount int64
	require.NoError(t, db.Model(&entities.Match{}).Count(&matchCount).Error)
	assert.Equal(t, int64(1), matchCount)
}

func TestImportMatchWorkbookWithoutEventsSheet(t *testing.T) {
	svc, db := testImporter(t)

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]interface{}{"Notas"}))
	path := filepath.Join(t.TempDir(), "vacio.xlsx")
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	created, err := svc.ImportMatchWorkbook(context.Background(), path, standings.LeagueRef{})
	require.NoError(t, err)
	assert.Zero(t, created)

	var report entities.MatchReport
	require.NoError(t, db.First(&report).Error, "the import is still recorded")
}
