package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

type StatsService interface {
	RecordGame(ctx context.Context, game *entity.Game) error
	GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type statsRepo interface {
	RecordGame(ctx context.Context, deltas []entity.PlayerStats) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type statsService struct {
	logger    *slog.Logger
	statsRepo statsRepo
}

// NewStatsService accepts a nil repository; stats are then neither stored nor read.
func NewStatsService(logger *slog.Logger, statsRepo statsRepo) StatsService {
	return &statsService{
		logger:    logger.With("component", "stats"),
		statsRepo: statsRepo,
	}
}

// RecordGame adds one finished game to every human seat. Pass-and-play games are not counted.
func (that *statsService) RecordGame(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "RecordGame", "gameID", game.ID)

	if that.statsRepo == nil || !game.IsFinished() || game.IsLocal() {
		return nil
	}

	humans := game.HumanPlayers()
	deltas := make([]entity.PlayerStats, 0, len(humans))

	for _, player := range humans {
		delta := entity.PlayerStats{
			PlayerID:    player.ID,
			GamesPlayed: 1,
			TotalScore:  game.State.Score.Of(player.Mark),
		}

		if game.Winner == xxxo.Result(player.Mark) {
			delta.GamesWon = 1
		}

		deltas = append(deltas, delta)
	}

	if err := that.statsRepo.RecordGame(ctx, deltas); err != nil {
		return fmt.Errorf("failed to record game: %w", err)
	}

	log.Info("game recorded", "players", len(deltas), "winner", game.Winner)

	return nil
}

func (that *statsService) GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	if that.statsRepo == nil {
		return &entity.PlayerStats{PlayerID: playerID}, nil
	}

	stats, err := that.statsRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}
