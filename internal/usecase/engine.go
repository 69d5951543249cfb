package usecase

import (
	"github.com/rocketscienceinc/xxxo-backend/internal/ai"
	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

// EngineUseCase runs the rules and the selector on a caller-supplied state
// without touching storage.
type EngineUseCase interface {
	PreviewMove(state xxxo.State, pos xxxo.Position, mark xxxo.Mark) (xxxo.Outcome, error)
	AIMove(state xxxo.State, difficulty string) (xxxo.Position, error)
}

type moveSelector interface {
	SelectMove(state xxxo.State, difficulty ai.Difficulty) xxxo.Position
}

type engineUseCase struct {
	selector          moveSelector
	defaultDifficulty ai.Difficulty
}

func NewEngineUseCase(selector moveSelector, defaultDifficulty ai.Difficulty) EngineUseCase {
	return &engineUseCase{
		selector:          selector,
		defaultDifficulty: defaultDifficulty,
	}
}

func (that *engineUseCase) PreviewMove(state xxxo.State, pos xxxo.Position, mark xxxo.Mark) (xxxo.Outcome, error) {
	if err := state.Validate(); err != nil {
		return xxxo.Outcome{}, err
	}

	return xxxo.ApplyMove(state, pos, mark)
}

func (that *engineUseCase) AIMove(state xxxo.State, difficulty string) (xxxo.Position, error) {
	if err := state.Validate(); err != nil {
		return xxxo.NoPosition, err
	}

	level := that.defaultDifficulty
	if difficulty != "" {
		var err error
		if level, err = ai.ParseDifficulty(difficulty); err != nil {
			return xxxo.NoPosition, err
		}
	}

	if !state.GameActive {
		return xxxo.NoPosition, apperror.ErrGameOver
	}

	move := that.selector.SelectMove(state, level)
	if move == xxxo.NoPosition {
		return xxxo.NoPosition, apperror.ErrNoLegalMoves
	}

	return move, nil
}
