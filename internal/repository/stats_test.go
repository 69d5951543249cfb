package repository

import (
	"testing"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/repository/storage"
	"github.com/rocketscienceinc/xxxo-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository(t *testing.T) {
	ctx, st := suite.NewPostgres(t)

	db := &storage.Storage{Connection: st.Postgres}
	require.NoError(t, db.Init(ctx))

	statsRepo := NewStatsRepository(st.Postgres)

	t.Run("Missing player reads as zero", func(t *testing.T) {
		stats, err := statsRepo.GetByPlayerID(ctx, "nobody")

		require.NoError(t, err)
		assert.Equal(t, &entity.PlayerStats{PlayerID: "nobody"}, stats)
	})

	t.Run("Games accumulate", func(t *testing.T) {
		// Given: two finished games between the same players
		first := []entity.PlayerStats{
			{PlayerID: "ann", GamesPlayed: 1, GamesWon: 1, TotalScore: 3},
			{PlayerID: "bob", GamesPlayed: 1, TotalScore: 1},
		}
		second := []entity.PlayerStats{
			{PlayerID: "ann", GamesPlayed: 1, TotalScore: 2},
			{PlayerID: "bob", GamesPlayed: 1, GamesWon: 1, TotalScore: 4},
		}

		// When: both are recorded
		require.NoError(t, statsRepo.RecordGame(ctx, first))
		require.NoError(t, statsRepo.RecordGame(ctx, second))

		// Then: the totals add up
		ann, err := statsRepo.GetByPlayerID(ctx, "ann")
		require.NoError(t, err)
		assert.Equal(t, &entity.PlayerStats{PlayerID: "ann", GamesPlayed: 2, GamesWon: 1, TotalScore: 5}, ann)

		bob, err := statsRepo.GetByPlayerID(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, &entity.PlayerStats{PlayerID: "bob", GamesPlayed: 2, GamesWon: 1, TotalScore: 5}, bob)
	})
}
