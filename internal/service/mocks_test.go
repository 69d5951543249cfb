package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/xxxo-backend/internal/ai"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

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

func (m *mockPlayerService) UpdatePlayer(ctx context.Context, player *entity.Player) error {
	return m.Called(ctx, player).Error(0)
}

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) CreateGame(ctx context.Context, gameType string) (*entity.Game, error) {
	args := m.Called(ctx, gameType)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameService) DeleteGame(ctx context.Context, gameID string) error {
	return m.Called(ctx, gameID).Error(0)
}

func (m *mockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameService) GetGameByCode(ctx context.Context, code string) (*entity.Game, error) {
	args := m.Called(ctx, code)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockStatsService struct {
	mock.Mock
}

func (m *mockStatsService) RecordGame(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockStatsService) GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	stats, _ := args.Get(0).(*entity.PlayerStats)
	return stats, args.Error(1)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) RecordGame(ctx context.Context, deltas []entity.PlayerStats) error {
	return m.Called(ctx, deltas).Error(0)
}

func (m *mockStatsRepo) GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	stats, _ := args.Get(0).(*entity.PlayerStats)
	return stats, args.Error(1)
}

type mockQueueRepo struct {
	mock.Mock
}

func (m *mockQueueRepo) Enqueue(ctx context.Context, playerID string) (int, error) {
	args := m.Called(ctx, playerID)
	return args.Int(0), args.Error(1)
}

func (m *mockQueueRepo) Remove(ctx context.Context, playerID string) error {
	return m.Called(ctx, playerID).Error(0)
}

func (m *mockQueueRepo) PopOrEnqueue(ctx context.Context, playerID string) (string, int, error) {
	args := m.Called(ctx, playerID)
	return args.String(0), args.Int(1), args.Error(2)
}

func (m *mockQueueRepo) Snapshot(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	waiting, _ := args.Get(0).([]string)
	return waiting, args.Error(1)
}

type mockMatchCreator struct {
	mock.Mock
}

func (m *mockMatchCreator) CreateMatch(ctx context.Context, xPlayerID, oPlayerID string) (*entity.Game, error) {
	args := m.Called(ctx, xPlayerID, oPlayerID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockSelector struct {
	mock.Mock
}

func (m *mockSelector) SelectMove(state xxxo.State, difficulty ai.Difficulty) xxxo.Position {
	args := m.Called(state, difficulty)
	return args.Get(0).(xxxo.Position)
}

type mockPlayerRepo struct {
	mock.Mock
}

func (m *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	return m.Called(ctx, player).Error(0)
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) GetByCode(ctx context.Context, code string) (*entity.Game, error) {
	args := m.Called(ctx, code)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
