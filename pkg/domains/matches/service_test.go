package matches

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webstats/crm/pkg/database"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/entities"
	"gorm.io/gorm"
)

type fixture struct {
	service Service
	db      *gorm.DB
	player  entities.Player
	match   entities.Match
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	team := entities.Team{Name: "C.D. Benagalbón", Slug: "cd-benagalbon", IsPrimary: true}
	require.NoError(t, db.Create(&team).Error)
	rival := entities.Team{Name: "Rincón CF", Slug: "rincon-cf"}
	require.NoError(t, db.Create(&rival).Error)

	nine := uint(9)
	player := entities.Player{TeamID: team.ID, Name: "García", Number: &nine, IsActive: true}
	require.NoError(t, db.Create(&player).Error)

	date := time.Now().Add(-2 * time.Hour)
	match := entities.Match{
		SeasonID:   1,
		Round:      "Jornada 5",
		Date:       &date,
		HomeTeamID: &team.ID,
		AwayTeamID: &rival.ID,
	}
	require.NoError(t, db.Create(&match).Error)

	return fixture{service: NewService(NewRepo(db)), db: db, player: player, match: match}
}

func TestRecordActionCreatesPendingEvent(t *testing.T) {
	f := newFixture(t)
	minute := 140

	resp, err := f.service.RecordAction(context.Background(), dtos.MatchActionDTO{
		PlayerID:   f.player.ID,
		ActionType: "Gol de jugada",
		Minute:     &minute,
		Result:     "Ganó",
		Zone:       "Zona de ataque",
	})
	require.NoError(t, err)
	assert.Equal(t, "9", resp.Player.Number)
	require.NotNil(t, resp.Minute)
	assert.Equal(t, uint(120), *resp.Minute, "minutes clamp to regulation plus extra time")

	var event entities.MatchEvent
	require.NoError(t, f.db.First(&event, resp.ID).Error)
	assert.False(t, event.IsConfirmed, "touch-field actions stay pending until finalize")
	assert.Equal(t, "Ataque", event.Tercio, "tercio derives from the zone")
	assert.Equal(t, f.match.ID, event.MatchID)
}

func TestRecordActionUnknownPlayer(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RecordAction(context.Background(), dtos.MatchActionDTO{
		PlayerID:   999,
		ActionType: "Gol de jugada",
	})
	assert.EqualError(t, err, "player not found")
}

func TestDeleteAction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.RecordAction(ctx, dtos.MatchActionDTO{PlayerID: f.player.ID, ActionType: "Falta"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteAction(ctx, resp.ID))
	assert.EqualError(t, f.service.DeleteAction(ctx, resp.ID), "event not found")
}

func TestFinalizeConfirmsAndStampsScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, action := range []string{"Gol de jugada", "Tarjeta amarilla"} {
		_, err := f.service.RecordAction(ctx, dtos.MatchActionDTO{PlayerID: f.player.ID, ActionType: action})
		require.NoError(t, err)
	}

	home, away := uint(2), uint(1)
	result, err := f.service.Finalize(ctx, dtos.FinalizeMatchDTO{HomeScore: &home, AwayScore: &away})
	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.Equal(t, int64(2), result.Updated)

	var match entities.Match
	require.NoError(t, f.db.First(&match, f.match.ID).Error)
	assert.Equal(t, "2-1", match.Result)

	var pending int64
	require.NoError(t, f.db.Model(&entities.MatchEvent{}).Where("is_confirmed = ?", false).Count(&pending).Error)
	assert.Zero(t, pending)

	var stat entities.PlayerStatistic
	require.NoError(t, f.db.Where("name = ?", "goals").First(&stat).Error)
	assert.Equal(t, f.player.ID, stat.PlayerID)
	assert.Equal(t, float64(1), stat.Value)
}

func TestPlayerMetricsCountsConfirmedOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.RecordAction(ctx, dtos.MatchActionDTO{PlayerID: f.player.ID, ActionType: "Gol de falta"})
	require.NoError(t, err)

	metrics, err := f.service.PlayerMetrics(ctx)
	require.NoError(t, err)
	assert.Empty(t, metrics, "pending events are invisible to metrics")

	_, err = f.service.Finalize(ctx, dtos.FinalizeMatchDTO{})
	require.NoError(t, err)

	metrics, err = f.service.PlayerMetrics(ctx)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "García", metrics[0].Name)
	assert.Equal(t, uint(1), metrics[0].Goals)
	assert.Equal(t, uint(1), metrics[0].Events)
}
