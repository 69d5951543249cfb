package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/service"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

// GameUseCase is what both transports talk to once a caller is authenticated.
type GameUseCase interface {
	CreateRoom(ctx context.Context, playerID string) (*entity.Game, error)
	JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	StartRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	GetRoom(ctx context.Context, code string) (*entity.Game, error)

	CreateBotGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error)
	CreateLocalGame(ctx context.Context, playerID string) (*entity.Game, error)

	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*service.TurnResult, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)

	JoinQueue(ctx context.Context, playerID string) (*service.QueueTicket, error)
	LeaveQueue(ctx context.Context, playerID string) error
	QueueSnapshot(ctx context.Context) ([]service.QueueEntry, error)

	GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type gamePlayService interface {
	CreateRoom(ctx context.Context, hostID string) (*entity.Game, error)
	JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	StartRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	GetRoom(ctx context.Context, code string) (*entity.Game, error)
	CreateBotGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error)
	CreateLocalGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*service.TurnResult, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)
}

type matchmakingService interface {
	JoinQueue(ctx context.Context, playerID string) (*service.QueueTicket, error)
	LeaveQueue(ctx context.Context, playerID string) error
	QueueSnapshot(ctx context.Context) ([]service.QueueEntry, error)
}

type statsService interface {
	GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type gameUseCase struct {
	gamePlayService    gamePlayService
	matchmakingService matchmakingService
	statsService       statsService
}

func NewGameUseCase(gamePlayService gamePlayService, matchmakingService matchmakingService, statsService statsService) GameUseCase {
	return &gameUseCase{
		gamePlayService:    gamePlayService,
		matchmakingService: matchmakingService,
		statsService:       statsService,
	}
}

func (that *gameUseCase) CreateRoom(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.CreateRoom(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.JoinRoom(ctx, code, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) StartRoom(ctx context.Context, code, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.StartRoom(ctx, code, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start room: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetRoom(ctx context.Context, code string) (*entity.Game, error) {
	return that.gamePlayService.GetRoom(ctx, code)
}

// CreateBotGame leaves the player out of the matchmaking queue before seating it.
func (that *gameUseCase) CreateBotGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error) {
	if err := that.matchmakingService.LeaveQueue(ctx, playerID); err != nil {
		return nil, fmt.Errorf("failed to leave queue: %w", err)
	}

	game, err := that.gamePlayService.CreateBotGame(ctx, playerID, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) CreateLocalGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.CreateLocalGame(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create local game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.gamePlayService.GetGame(ctx, gameID)
}

func (that *gameUseCase) MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*service.TurnResult, error) {
	result, err := that.gamePlayService.MakeTurn(ctx, playerID, gameID, pos)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return result, nil
}

func (that *gameUseCase) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.LeaveGame(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to leave game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) JoinQueue(ctx context.Context, playerID string) (*service.QueueTicket, error) {
	ticket, err := that.matchmakingService.JoinQueue(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to join queue: %w", err)
	}

	return ticket, nil
}

func (that *gameUseCase) LeaveQueue(ctx context.Context, playerID string) error {
	if err := that.matchmakingService.LeaveQueue(ctx, playerID); err != nil {
		return fmt.Errorf("failed to leave queue: %w", err)
	}

	return nil
}

func (that *gameUseCase) QueueSnapshot(ctx context.Context) ([]service.QueueEntry, error) {
	return that.matchmakingService.QueueSnapshot(ctx)
}

func (that *gameUseCase) GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	stats, err := that.statsService.GetStats(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}
