package xxxo

import (
	"fmt"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
)

// Outcome is the result of one accepted move.
type Outcome struct {
	State     State     `json:"state"`
	Move      Position  `json:"move"`
	Mark      Mark      `json:"mark"`
	Points    int       `json:"pointsGained"`
	GameEnded bool      `json:"gameEnded"`
	Winner    Result    `json:"winner,omitempty"`
	EndReason EndReason `json:"endReason,omitempty"`
}

// ValidateMove runs the legality checks in order and returns the first failure.
func ValidateMove(state State, pos Position, mark Mark) error {
	if !state.GameActive {
		return apperror.ErrGameOver
	}

	if mark != state.CurrentPlayer {
		return apperror.ErrNotYourTurn
	}

	if !pos.InBounds() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, pos)
	}

	if !state.Board.IsEmpty(pos) {
		return apperror.ErrCellOccupied
	}

	if state.LastMove.Blocks(mark, pos) {
		return apperror.ErrAdjacentToOwnLastMove
	}

	return nil
}

// ApplyMove validates the move, scores it and derives the next turn state.
// The input state is never modified.
func ApplyMove(state State, pos Position, mark Mark) (Outcome, error) {
	if err := ValidateMove(state, pos, mark); err != nil {
		return Outcome{}, err
	}

	wasBonus := state.BonusTurn

	next := state
	next.Board = state.Board.Place(pos, mark)
	points := ScoreMove(next.Board, pos, mark)
	next.Score = state.Score.Add(mark, points)
	next.LastMove = state.LastMove.With(mark, pos)
	next.BonusTurn = false

	outcome := Outcome{Move: pos, Mark: mark, Points: points}

	if wasBonus && mark == O {
		return finish(outcome, next, ReasonBonusTurn), nil
	}

	xCanMove := HasLegalMove(next.Board, X, next.LastMove)
	oCanMove := HasLegalMove(next.Board, O, next.LastMove)

	switch {
	case next.Board.CountEmpty() <= 1:
		return finish(outcome, next, ReasonBoardFull), nil
	case !xCanMove && !oCanMove:
		return finish(outcome, next, ReasonNoMoves), nil
	case !PointsStillPossible(next.Board, next.LastMove):
		return finish(outcome, next, ReasonNoPoints), nil
	}

	if mark == X && !xCanMove && oCanMove {
		next.CurrentPlayer = O
		next.BonusTurn = true
		outcome.State = next

		return outcome, nil
	}

	if mark == X && !oCanMove {
		return finish(outcome, next, ReasonOpponentBlocked), nil
	}

	next.CurrentPlayer = mark.Opponent()
	outcome.State = next

	return outcome, nil
}

// Stalled reports an active state whose current player has nowhere to move.
func Stalled(state State) bool {
	return state.GameActive && !HasLegalMove(state.Board, state.CurrentPlayer, state.LastMove)
}

// Conclude ends an active game outside the move pipeline, e.g. when a seat is
// abandoned. Finished states are returned unchanged.
func Conclude(state State, reason EndReason) Outcome {
	if !state.GameActive {
		return Outcome{State: state, GameEnded: true, Winner: state.Winner()}
	}

	return finish(Outcome{Move: NoPosition}, state, reason)
}

func finish(outcome Outcome, state State, reason EndReason) Outcome {
	state.GameActive = false
	state.BonusTurn = false

	outcome.State = state
	outcome.GameEnded = true
	outcome.Winner = ResultOf(state.Score)
	outcome.EndReason = reason

	return outcome
}
