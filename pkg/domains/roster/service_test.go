package roster

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webstats/crm/pkg/database"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
	"gorm.io/gorm"
)

func seededService(t *testing.T) (Service, []entities.Player) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	team := entities.Team{Name: "C.D. Benagalbón", Slug: "cd-benagalbon", IsPrimary: true}
	require.NoError(t, db.Create(&team).Error)

	nine, eleven := uint(9), uint(11)
	players := []entities.Player{
		{TeamID: team.ID, Name: "García", Number: &nine, Position: "Delantero", IsActive: true},
		{TeamID: team.ID, Name: "Pérez", Number: &eleven, Position: "Extremo", IsActive: true},
		{TeamID: team.ID, Name: "Retirado", IsActive: false},
	}
	require.NoError(t, db.Create(&players).Error)

	return NewService(NewRepo(db), scraper.NewFetcher()), players
}

func TestTeamPlayersSkipsInactive(t *testing.T) {
	s, players := seededService(t)

	list, err := s.TeamPlayers(context.Background(), players[0].TeamID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "García", list[0].Name)
}

func TestTeamPlayersUnknownTeam(t *testing.T) {
	s, _ := seededService(t)

	_, err := s.TeamPlayers(context.Background(), 999)
	assert.EqualError(t, err, "team not found")
}

func TestSaveConvocationReplacesCurrent(t *testing.T) {
	s, players := seededService(t)
	ctx := context.Background()

	first, err := s.SaveConvocation(ctx, dtos.ConvocationDTO{PlayerIDs: []uint{players[0].ID, players[1].ID}})
	require.NoError(t, err)
	assert.Len(t, first.Players, 2)

	second, err := s.SaveConvocation(ctx, dtos.ConvocationDTO{PlayerIDs: []uint{players[1].ID}})
	require.NoError(t, err)

	current, err := s.CurrentConvocation(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, second.ID, current.ID)
	require.Len(t, current.Players, 1)
	assert.Equal(t, "Pérez", current.Players[0].Name)
}

func TestSaveConvocationRejectsUnknownPlayers(t *testing.T) {
	s, players := seededService(t)

	_, err := s.SaveConvocation(context.Background(), dtos.ConvocationDTO{PlayerIDs: []uint{players[0].ID, 999}})
	assert.Error(t, err)

	_, err = s.SaveConvocation(context.Background(), dtos.ConvocationDTO{PlayerIDs: nil})
	assert.Error(t, err)
}

func TestCurrentConvocationEmpty(t *testing.T) {
	s, _ := seededService(t)

	current, err := s.CurrentConvocation(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}
