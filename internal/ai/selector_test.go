package ai

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardOf(rows ...string) xxxo.Board {
	var board xxxo.Board
	for row, line := range rows {
		for col, ch := range line {
			switch ch {
			case 'X':
				board[row][col] = xxxo.X
			case 'O':
				board[row][col] = xxxo.O
			}
		}
	}

	return board
}

func at(row, col int) *xxxo.Position {
	return &xxxo.Position{Row: row, Col: col}
}

// rowThreeState gives X a free fourth cell on row 0.
func rowThreeState() xxxo.State {
	state := xxxo.NewState()
	state.Board = boardOf(
		"XXX..",
		".....",
		"..O..",
		"X....",
		"..O.O",
	)
	state.LastMove = xxxo.LastMove{X: at(3, 0), O: at(2, 2)}

	return state
}

func TestParseDifficulty(t *testing.T) {
	for _, value := range []string{"easy", "Medium", " HARD "} {
		_, err := ParseDifficulty(value)
		assert.NoError(t, err, value)
	}

	_, err := ParseDifficulty("impossible")
	require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
}

func TestSelectMove_NoMoveAvailable(t *testing.T) {
	selector := NewSelector(rand.New(rand.NewSource(1)))

	t.Run("Finished game", func(t *testing.T) {
		state := xxxo.NewState()
		state.GameActive = false

		assert.Equal(t, xxxo.NoPosition, selector.SelectMove(state, Hard))
	})

	t.Run("Current player is boxed in", func(t *testing.T) {
		state := xxxo.NewState()
		state.Board = boardOf(
			"X.XOX",
			".OOXO",
			"OOXOX",
			"XOOXO",
			"OOXXO",
		)
		state.LastMove = xxxo.LastMove{X: at(0, 0), O: at(4, 4)}

		assert.Equal(t, xxxo.NoPosition, selector.SelectMove(state, Easy))
	})
}

func TestSelectMove_AlwaysLegal(t *testing.T) {
	for _, difficulty := range []Difficulty{Easy, Medium, Hard} {
		t.Run(string(difficulty), func(t *testing.T) {
			selector := NewSelector(rand.New(rand.NewSource(7)))

			for game := 0; game < 3; game++ {
				state := xxxo.NewState()

				for state.GameActive && xxxo.HasLegalMove(state.Board, state.CurrentPlayer, state.LastMove) {
					move := selector.SelectMove(state, difficulty)
					require.NoError(t, xxxo.ValidateMove(state, move, state.CurrentPlayer))

					outcome, err := xxxo.ApplyMove(state, move, state.CurrentPlayer)
					require.NoError(t, err)
					state = outcome.State
				}
			}
		})
	}
}

func TestSelectMove_EasyTakesScoringMoves(t *testing.T) {
	// Given: X can score by extending row 0
	state := rowThreeState()
	selector := NewSelector(rand.New(rand.NewSource(3)))

	for i := 0; i < 20; i++ {
		// When: the easy tier picks
		move := selector.SelectMove(state, Easy)

		// Then: the pick always scores
		assert.Positive(t, xxxo.ScoreMove(state.Board.Place(move, xxxo.X), move, xxxo.X), "move %s", move)
	}
}

func TestSelectMove_TakesImmediatePoint(t *testing.T) {
	want := xxxo.Position{Row: 0, Col: 3}

	for _, difficulty := range []Difficulty{Medium, Hard} {
		t.Run(string(difficulty), func(t *testing.T) {
			selector := NewSelector(rand.New(rand.NewSource(1)), WithJitter(0))

			assert.Equal(t, want, selector.SelectMove(rowThreeState(), difficulty))
		})
	}
}

func TestSelectMove_BlocksOpponentFour(t *testing.T) {
	// Given: O threatens to complete four on row 0
	state := xxxo.NewState()
	state.Board = boardOf(
		"OOO..",
		".....",
		"..X..",
		"O....",
		"..X.X",
	)
	state.LastMove = xxxo.LastMove{X: at(2, 2), O: at(3, 0)}
	want := xxxo.Position{Row: 0, Col: 3}

	for _, difficulty := range []Difficulty{Medium, Hard} {
		t.Run(string(difficulty), func(t *testing.T) {
			selector := NewSelector(rand.New(rand.NewSource(1)), WithJitter(0))

			// When / Then: X takes the cell O needs
			assert.Equal(t, want, selector.SelectMove(state, difficulty))
		})
	}
}

func TestSelectMove_HardIsDeterministicWithoutJitter(t *testing.T) {
	state := xxxo.NewState()
	state.Board = boardOf(
		"X....",
		"..O..",
		".X...",
		"...O.",
		".....",
	)
	state.LastMove = xxxo.LastMove{X: at(2, 1), O: at(3, 3)}

	first := NewSelector(rand.New(rand.NewSource(1)), WithJitter(0)).SelectMove(state, Hard)
	second := NewSelector(rand.New(rand.NewSource(99)), WithJitter(0)).SelectMove(state, Hard)

	assert.Equal(t, first, second)
	assert.NoError(t, xxxo.ValidateMove(state, first, xxxo.X))
}

func TestNewSelector_Options(t *testing.T) {
	selector := NewSelector(rand.New(rand.NewSource(1)), WithJitter(-2), WithDepth(0))
	assert.Equal(t, 2.0, selector.jitter)
	assert.Equal(t, defaultDepth, selector.depth)

	selector = NewSelector(rand.New(rand.NewSource(1)), WithDepth(3))
	assert.Equal(t, 3, selector.depth)
	assert.Equal(t, defaultJitter, selector.jitter)
}
