package xxxo

import (
	"fmt"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
)

type Score struct {
	X int `json:"X"`
	O int `json:"O"`
}

func (s Score) Of(mark Mark) int {
	if mark == O {
		return s.O
	}

	return s.X
}

func (s Score) Add(mark Mark, points int) Score {
	if mark == O {
		s.O += points
	} else {
		s.X += points
	}

	return s
}

// LastMove holds the most recent cell each player occupied; nil means none.
type LastMove struct {
	X *Position `json:"X"`
	O *Position `json:"O"`
}

func (l LastMove) Of(mark Mark) *Position {
	if mark == O {
		return l.O
	}

	return l.X
}

// With returns a copy where mark's last move is pos. The receiver is not touched.
func (l LastMove) With(mark Mark, pos Position) LastMove {
	p := pos
	if mark == O {
		l.O = &p
	} else {
		l.X = &p
	}

	return l
}

// Blocks reports whether the adjacency restriction forbids mark from playing pos.
func (l LastMove) Blocks(mark Mark, pos Position) bool {
	last := l.Of(mark)

	return last != nil && last.Touches(pos)
}

type Result string

const (
	ResultNone Result = ""
	ResultX    Result = "X"
	ResultO    Result = "O"
	ResultTie  Result = "tie"
)

// ResultOf compares final scores.
func ResultOf(score Score) Result {
	switch {
	case score.X > score.O:
		return ResultX
	case score.O > score.X:
		return ResultO
	default:
		return ResultTie
	}
}

type EndReason string

const (
	ReasonNone            EndReason = ""
	ReasonBonusTurn       EndReason = "bonus_turn"
	ReasonBoardFull       EndReason = "board_full"
	ReasonNoMoves         EndReason = "no_moves"
	ReasonNoPoints        EndReason = "no_points"
	ReasonOpponentBlocked EndReason = "opponent_blocked"
	ReasonStalled         EndReason = "stalled"
	ReasonAbandoned       EndReason = "abandoned"
)

// State is a full snapshot of one game. Values are copied, never shared.
type State struct {
	Board         Board    `json:"board"`
	CurrentPlayer Mark     `json:"currentPlayer"`
	GameActive    bool     `json:"gameActive"`
	BonusTurn     bool     `json:"bonusTurn"`
	Score         Score    `json:"score"`
	LastMove      LastMove `json:"lastMove"`
}

func NewState() State {
	return State{
		CurrentPlayer: X,
		GameActive:    true,
	}
}

// Winner is only meaningful once the game is no longer active.
func (s State) Winner() Result {
	if s.GameActive {
		return ResultNone
	}

	return ResultOf(s.Score)
}

// Validate checks a resumed snapshot against the board invariants.
func (s State) Validate() error {
	if !s.CurrentPlayer.IsPlayer() {
		return fmt.Errorf("%w: current player %q", apperror.ErrInvalidState, s.CurrentPlayer)
	}

	if s.BonusTurn && (s.CurrentPlayer != O || !s.GameActive) {
		return fmt.Errorf("%w: bonus turn outside of an active O turn", apperror.ErrInvalidState)
	}

	if s.Score.X < 0 || s.Score.O < 0 {
		return fmt.Errorf("%w: negative score", apperror.ErrInvalidState)
	}

	for row := range s.Board {
		for col := range s.Board[row] {
			if cell := s.Board[row][col]; cell != Empty && !cell.IsPlayer() {
				return fmt.Errorf("%w: cell (%d,%d) holds %q", apperror.ErrInvalidState, row, col, cell)
			}
		}
	}

	for _, mark := range []Mark{X, O} {
		last := s.LastMove.Of(mark)
		if last == nil {
			continue
		}

		if !last.InBounds() || s.Board.At(*last) != mark {
			return fmt.Errorf("%w: last move of %s at %s", apperror.ErrInvalidState, mark, last)
		}
	}

	return nil
}
