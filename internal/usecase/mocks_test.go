package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/service"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

type mockPlayerService struct {
	mock.Mock
}

func (m *mockPlayerService) CreatePlayer(ctx context.Context, name string) (*entity.Player, error) {
	args := m.Called(ctx, name)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (m *mockPlayerService) GetPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) GenerateToken(playerID string) (string, error) {
	args := m.Called(playerID)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) ParseToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type mockGamePlayService struct {
	mock.Mock
}

func (m *mockGamePlayService) game(args mock.Arguments) (*entity.Game, error) {
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGamePlayService) CreateRoom(ctx context.Context, hostID string) (*entity.Game, error) {
	return m.game(m.Called(ctx, hostID))
}

func (m *mockGamePlayService) JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error) {
	return m.game(m.Called(ctx, code, playerID))
}

func (m *mockGamePlayService) StartRoom(ctx context.Context, code, playerID string) (*entity.Game, error) {
	return m.game(m.Called(ctx, code, playerID))
}

func (m *mockGamePlayService) GetRoom(ctx context.Context, code string) (*entity.Game, error) {
	return m.game(m.Called(ctx, code))
}

func (m *mockGamePlayService) CreateBotGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error) {
	return m.game(m.Called(ctx, playerID, difficulty))
}

func (m *mockGamePlayService) CreateLocalGame(ctx context.Context, playerID string) (*entity.Game, error) {
	return m.game(m.Called(ctx, playerID))
}

func (m *mockGamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return m.game(m.Called(ctx, gameID))
}

func (m *mockGamePlayService) MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*service.TurnResult, error) {
	args := m.Called(ctx, playerID, gameID, pos)
	result, _ := args.Get(0).(*service.TurnResult)
	return result, args.Error(1)
}

func (m *mockGamePlayService) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	return m.game(m.Called(ctx, playerID))
}

type mockMatchmakingService struct {
	mock.Mock
}

func (m *mockMatchmakingService) JoinQueue(ctx context.Context, playerID string) (*service.QueueTicket, error) {
	args := m.Called(ctx, playerID)
	ticket, _ := args.Get(0).(*service.QueueTicket)
	return ticket, args.Error(1)
}

func (m *mockMatchmakingService) LeaveQueue(ctx context.Context, playerID string) error {
	return m.Called(ctx, playerID).Error(0)
}

func (m *mockMatchmakingService) QueueSnapshot(ctx context.Context) ([]service.QueueEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]service.QueueEntry)
	return entries, args.Error(1)
}

type mockStatsService struct {
	mock.Mock
}

func (m *mockStatsService) GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	stats, _ := args.Get(0).(*entity.PlayerStats)
	return stats, args.Error(1)
}
