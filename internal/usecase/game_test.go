package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/service"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

var errRedisDown = errors.New("redis down")

type gameUseCaseFixture struct {
	gameplay *mockGamePlayService
	queue    *mockMatchmakingService
	stats    *mockStatsService
	useCase  GameUseCase
}

func newGameUseCaseFixture() *gameUseCaseFixture {
	f := &gameUseCaseFixture{
		gameplay: &mockGamePlayService{},
		queue:    &mockMatchmakingService{},
		stats:    &mockStatsService{},
	}
	f.useCase = NewGameUseCase(f.gameplay, f.queue, f.stats)

	return f
}

func TestGameUseCase_CreateBotGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Leaves the queue before seating the player", func(t *testing.T) {
		// Given: a queued player
		f := newGameUseCaseFixture()
		game := entity.NewGame("game-1", entity.WithBotType)

		f.queue.On("LeaveQueue", ctx, "p1").Return(nil).Once()
		f.gameplay.On("CreateBotGame", ctx, "p1", "hard").Return(game, nil).Once()

		// When: the player starts a bot game
		got, err := f.useCase.CreateBotGame(ctx, "p1", "hard")

		// Then: the queue entry is gone and the game is returned
		require.NoError(t, err)
		assert.Equal(t, game, got)
		f.queue.AssertExpectations(t)
	})

	t.Run("Queue failure stops the request", func(t *testing.T) {
		f := newGameUseCaseFixture()
		f.queue.On("LeaveQueue", ctx, "p1").Return(errRedisDown).Once()

		_, err := f.useCase.CreateBotGame(ctx, "p1", "")

		require.ErrorIs(t, err, errRedisDown)
		f.gameplay.AssertNotCalled(t, "CreateBotGame", ctx, "p1", "")
	})
}

func TestGameUseCase_MakeTurn(t *testing.T) {
	ctx := context.Background()
	pos := xxxo.Position{Row: 1, Col: 1}

	t.Run("Returns the turn result", func(t *testing.T) {
		f := newGameUseCaseFixture()
		result := &service.TurnResult{PointsGained: 1}
		f.gameplay.On("MakeTurn", ctx, "p1", "game-1", pos).Return(result, nil).Once()

		got, err := f.useCase.MakeTurn(ctx, "p1", "game-1", pos)

		require.NoError(t, err)
		assert.Equal(t, 1, got.PointsGained)
	})

	t.Run("Keeps the move rejection visible", func(t *testing.T) {
		f := newGameUseCaseFixture()
		f.gameplay.On("MakeTurn", ctx, "p1", "game-1", pos).Return(nil, apperror.ErrAdjacentToOwnLastMove).Once()

		_, err := f.useCase.MakeTurn(ctx, "p1", "game-1", pos)

		require.ErrorIs(t, err, apperror.ErrAdjacentToOwnLastMove)
	})
}

func TestGameUseCase_Rooms(t *testing.T) {
	ctx := context.Background()
	f := newGameUseCaseFixture()

	f.gameplay.On("JoinRoom", ctx, "ABC123", "p2").Return(nil, apperror.ErrRoomFull).Once()
	f.gameplay.On("StartRoom", ctx, "ABC123", "p2").Return(nil, apperror.ErrNotRoomHost).Once()

	_, err := f.useCase.JoinRoom(ctx, "ABC123", "p2")
	require.ErrorIs(t, err, apperror.ErrRoomFull)

	_, err = f.useCase.StartRoom(ctx, "ABC123", "p2")
	require.ErrorIs(t, err, apperror.ErrNotRoomHost)
}

func TestGameUseCase_GetStats(t *testing.T) {
	ctx := context.Background()
	f := newGameUseCaseFixture()

	f.stats.On("GetStats", ctx, "p1").Return(&entity.PlayerStats{PlayerID: "p1", GamesPlayed: 3}, nil).Once()

	stats, err := f.useCase.GetStats(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, 3, stats.GamesPlayed)
}
