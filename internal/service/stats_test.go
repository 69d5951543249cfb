package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

func finishedMatch(t *testing.T) *entity.Game {
	t.Helper()

	game := entity.NewGame("game-1", entity.PublicType)
	require.NoError(t, game.AddPlayer(&entity.Player{ID: "ann"}))
	require.NoError(t, game.AddPlayer(&entity.Player{ID: "bob"}))
	require.NoError(t, game.Start())

	game.State.Score = xxxo.Score{X: 1, O: 3}
	game.Conclude(xxxo.ReasonNoPoints)

	return game
}

func TestStatsService_RecordGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Records one delta per human seat", func(t *testing.T) {
		// Given: a finished match won by O
		game := finishedMatch(t)
		repo := &mockStatsRepo{}
		repo.On("RecordGame", ctx, []entity.PlayerStats{
			{PlayerID: "ann", GamesPlayed: 1, TotalScore: 1},
			{PlayerID: "bob", GamesPlayed: 1, GamesWon: 1, TotalScore: 3},
		}).Return(nil).Once()

		// When: it is recorded
		err := NewStatsService(discardLogger(), repo).RecordGame(ctx, game)

		// Then: the repository receives both deltas
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Skips unfinished and local games", func(t *testing.T) {
		repo := &mockStatsRepo{}
		service := NewStatsService(discardLogger(), repo)

		ongoing := entity.NewGame("game-2", entity.PublicType)
		local := finishedMatch(t)
		local.Type = entity.LocalType

		require.NoError(t, service.RecordGame(ctx, ongoing))
		require.NoError(t, service.RecordGame(ctx, local))
		repo.AssertNotCalled(t, "RecordGame", mock.Anything, mock.Anything)
	})

	t.Run("Without a repository nothing is stored", func(t *testing.T) {
		service := NewStatsService(discardLogger(), nil)

		require.NoError(t, service.RecordGame(ctx, finishedMatch(t)))

		stats, err := service.GetStats(ctx, "ann")
		require.NoError(t, err)
		assert.Equal(t, &entity.PlayerStats{PlayerID: "ann"}, stats)
	})
}
