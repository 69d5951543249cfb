package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/xxxo-backend/internal/ai"
	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	// Play moves for the bot for as long as the bot holds the turn, bonus turns included.
	Play(ctx context.Context, game *entity.Game) ([]xxxo.Outcome, error)
}

type moveSelector interface {
	SelectMove(state xxxo.State, difficulty ai.Difficulty) xxxo.Position
}

type botService struct {
	logger *slog.Logger

	selector          moveSelector
	defaultDifficulty ai.Difficulty
	thinkingDelay     time.Duration
}

func NewBotService(logger *slog.Logger, selector moveSelector, defaultDifficulty ai.Difficulty, thinkingDelay time.Duration) BotService {
	return &botService{
		logger:            logger.With("component", "bot"),
		selector:          selector,
		defaultDifficulty: defaultDifficulty,
		thinkingDelay:     thinkingDelay,
	}
}

func (that *botService) Play(ctx context.Context, game *entity.Game) ([]xxxo.Outcome, error) {
	log := that.logger.With("method", "Play", "gameID", game.ID)

	difficulty, err := ai.ParseDifficulty(game.Difficulty)
	if err != nil {
		difficulty = that.defaultDifficulty
	}

	var outcomes []xxxo.Outcome

	for game.BotTurn() {
		bot := game.PlayerByMark(game.State.CurrentPlayer)
		if bot == nil {
			return outcomes, ErrBotNotFound
		}

		if err = that.think(ctx); err != nil {
			return outcomes, err
		}

		move := that.selector.SelectMove(game.State, difficulty)
		if move == xxxo.NoPosition {
			return outcomes, apperror.ErrNoLegalMoves
		}

		outcome, turnErr := game.MakeTurn(bot.Mark, move)
		if turnErr != nil {
			return outcomes, fmt.Errorf("bot failed to make turn: %w", turnErr)
		}

		log.Debug("bot moved", "move", move.String(), "points", outcome.Points, "difficulty", difficulty)

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// think waits out the configured delay unless the context ends first.
func (that *botService) think(ctx context.Context) error {
	if that.thinkingDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(that.thinkingDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("bot interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
