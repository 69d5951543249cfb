package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
)

type StatsRepository interface {
	// RecordGame adds every delta inside one transaction.
	RecordGame(ctx context.Context, deltas []entity.PlayerStats) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type statsRepository struct {
	conn *sql.DB
}

func NewStatsRepository(conn *sql.DB) StatsRepository {
	return &statsRepository{
		conn: conn,
	}
}

func (that *statsRepository) RecordGame(ctx context.Context, deltas []entity.PlayerStats) error {
	query := `INSERT INTO player_stats (player_id, games_played, games_won, total_score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id) DO UPDATE SET
			games_played = player_stats.games_played + EXCLUDED.games_played,
			games_won    = player_stats.games_won + EXCLUDED.games_won,
			total_score  = player_stats.total_score + EXCLUDED.total_score,
			updated_at   = NOW()`

	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	for _, delta := range deltas {
		_, err = tx.ExecContext(ctx, query, delta.PlayerID, delta.GamesPlayed, delta.GamesWon, delta.TotalScore)
		if err != nil {
			return fmt.Errorf("failed to record stats for player %s: %w", delta.PlayerID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats: %w", err)
	}

	return nil
}

// GetByPlayerID reads a missing row as zero stats.
func (that *statsRepository) GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	query := `SELECT games_played, games_won, total_score FROM player_stats WHERE player_id = $1`

	stats := &entity.PlayerStats{PlayerID: playerID}

	err := that.conn.QueryRowContext(ctx, query, playerID).Scan(&stats.GamesPlayed, &stats.GamesWon, &stats.TotalScore)
	if errors.Is(err, sql.ErrNoRows) {
		return stats, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}
