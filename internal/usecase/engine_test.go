package usecase

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xxxo-backend/internal/ai"
	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

func newEngine() EngineUseCase {
	selector := ai.NewSelector(rand.New(rand.NewSource(3)), ai.WithJitter(0))
	return NewEngineUseCase(selector, ai.Medium)
}

// crampedState leaves only (0,1) empty, right next to X's last move at (0,0).
func crampedState() xxxo.State {
	state := xxxo.NewState()
	for row := 0; row < xxxo.Size; row++ {
		for col := 0; col < xxxo.Size; col++ {
			if row == 0 && col == 1 {
				continue
			}

			state.Board[row][col] = xxxo.X
			if (row+col)%2 == 1 {
				state.Board[row][col] = xxxo.O
			}
		}
	}

	state.LastMove = state.LastMove.With(xxxo.X, xxxo.Position{Row: 0, Col: 0})

	return state
}

func TestEngineUseCase_PreviewMove(t *testing.T) {
	engine := newEngine()

	t.Run("Applies the move to a copy", func(t *testing.T) {
		state := xxxo.NewState()

		outcome, err := engine.PreviewMove(state, xxxo.Position{Row: 2, Col: 2}, xxxo.X)

		require.NoError(t, err)
		assert.Equal(t, xxxo.O, outcome.State.CurrentPlayer)
		assert.True(t, state.Board.IsEmpty(xxxo.Position{Row: 2, Col: 2}))
	})

	t.Run("Rejects an invalid snapshot", func(t *testing.T) {
		state := xxxo.NewState()
		state.CurrentPlayer = "Z"

		_, err := engine.PreviewMove(state, xxxo.Position{Row: 2, Col: 2}, xxxo.X)

		require.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Surfaces the move rejection", func(t *testing.T) {
		_, err := engine.PreviewMove(xxxo.NewState(), xxxo.Position{Row: 2, Col: 2}, xxxo.O)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestEngineUseCase_AIMove(t *testing.T) {
	engine := newEngine()

	t.Run("Picks a legal cell", func(t *testing.T) {
		state := xxxo.NewState()

		move, err := engine.AIMove(state, "")

		require.NoError(t, err)
		require.NoError(t, xxxo.ValidateMove(state, move, xxxo.X))
	})

	t.Run("No legal move", func(t *testing.T) {
		_, err := engine.AIMove(crampedState(), "hard")

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
	})

	t.Run("Finished game", func(t *testing.T) {
		state := xxxo.NewState()
		state.GameActive = false

		_, err := engine.AIMove(state, "easy")

		require.ErrorIs(t, err, apperror.ErrGameOver)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		_, err := engine.AIMove(xxxo.NewState(), "nightmare")

		require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
	})
}
