package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
)

const (
	minEstimatedWait    = 5
	secondsPerQueueSlot = 10
)

// QueueTicket is the answer to a queue join: either a started match or a place in line.
type QueueTicket struct {
	Game          *entity.Game `json:"game,omitempty"`
	Position      int          `json:"position,omitempty"`
	EstimatedWait int          `json:"estimatedWait,omitempty"`
}

type QueueEntry struct {
	PlayerID      string `json:"playerId"`
	Position      int    `json:"position"`
	EstimatedWait int    `json:"estimatedWait"`
}

type MatchmakingService interface {
	JoinQueue(ctx context.Context, playerID string) (*QueueTicket, error)
	LeaveQueue(ctx context.Context, playerID string) error
	QueueSnapshot(ctx context.Context) ([]QueueEntry, error)
}

type queueRepo interface {
	Enqueue(ctx context.Context, playerID string) (int, error)
	Remove(ctx context.Context, playerID string) error
	PopOrEnqueue(ctx context.Context, playerID string) (string, int, error)
	Snapshot(ctx context.Context) ([]string, error)
}

type matchCreator interface {
	CreateMatch(ctx context.Context, xPlayerID, oPlayerID string) (*entity.Game, error)
}

type matchmakingService struct {
	logger *slog.Logger

	queueRepo     queueRepo
	playerService PlayerService
	matches       matchCreator
}

func NewMatchmakingService(logger *slog.Logger, queueRepo queueRepo, playerService PlayerService, matches matchCreator) MatchmakingService {
	return &matchmakingService{
		logger:        logger.With("component", "matchmaking"),
		queueRepo:     queueRepo,
		playerService: playerService,
		matches:       matches,
	}
}

// EstimatedWait is a rough guess in seconds for a given 1-based queue position.
func EstimatedWait(position int) int {
	return max(minEstimatedWait, position*secondsPerQueueSlot)
}

// JoinQueue pairs the newcomer with the oldest waiting player. The newcomer
// plays X. Without an opponent the player is queued.
func (that *matchmakingService) JoinQueue(ctx context.Context, playerID string) (*QueueTicket, error) {
	log := that.logger.With("method", "JoinQueue", "playerID", playerID)

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		return nil, apperror.ErrAlreadyInGame
	}

	opponentID, position, err := that.queueRepo.PopOrEnqueue(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to join queue: %w", err)
	}

	if opponentID == "" {
		log.Info("player queued", "position", position)

		return &QueueTicket{
			Position:      position,
			EstimatedWait: EstimatedWait(position),
		}, nil
	}

	game, err := that.matches.CreateMatch(ctx, playerID, opponentID)
	if err != nil {
		// the opponent goes back in line
		if _, requeueErr := that.queueRepo.Enqueue(ctx, opponentID); requeueErr != nil {
			log.Error("failed to requeue opponent", "opponentID", opponentID, "error", requeueErr)
		}

		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("match found", "gameID", game.ID, "opponentID", opponentID)

	return &QueueTicket{Game: game}, nil
}

func (that *matchmakingService) LeaveQueue(ctx context.Context, playerID string) error {
	if err := that.queueRepo.Remove(ctx, playerID); err != nil {
		return fmt.Errorf("failed to leave queue: %w", err)
	}

	return nil
}

func (that *matchmakingService) QueueSnapshot(ctx context.Context) ([]QueueEntry, error) {
	waiting, err := that.queueRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}

	entries := make([]QueueEntry, 0, len(waiting))
	for i, id := range waiting {
		entries = append(entries, QueueEntry{
			PlayerID:      id,
			Position:      i + 1,
			EstimatedWait: EstimatedWait(i + 1),
		})
	}

	return entries, nil
}
