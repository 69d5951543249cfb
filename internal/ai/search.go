package ai

import (
	"math"

	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

type search struct {
	selector *Selector
	mark     xxxo.Mark
}

// minimax maximises whenever the side to move is the searching mark. A bonus
// turn therefore shows up as two consecutive nodes for the same side.
func (s search) minimax(state xxxo.State, depth int, alpha, beta float64) float64 {
	if !state.GameActive {
		return s.terminal(state)
	}

	if depth <= 0 {
		return s.evaluate(state)
	}

	moves := xxxo.LegalMoves(state.Board, state.CurrentPlayer, state.LastMove)
	if len(moves) == 0 {
		return s.evaluate(state)
	}

	maximizing := state.CurrentPlayer == s.mark

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}

	for _, p := range moves {
		outcome, err := xxxo.ApplyMove(state, p, state.CurrentPlayer)
		if err != nil {
			continue
		}

		value := s.minimax(outcome.State, depth-1, alpha, beta)

		if maximizing {
			best = max(best, value)
			alpha = max(alpha, value)
		} else {
			best = min(best, value)
			beta = min(beta, value)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}

func (s search) terminal(state xxxo.State) float64 {
	switch state.Winner() {
	case xxxo.Result(s.mark):
		return decisive
	case xxxo.Result(s.mark.Opponent()):
		return -decisive
	default:
		return 0
	}
}

func (s search) evaluate(state xxxo.State) float64 {
	opponent := s.mark.Opponent()

	value := (state.Score.Of(s.mark)-state.Score.Of(opponent))*gainWeight +
		positionalEvaluation(state.Board, s.mark) - positionalEvaluation(state.Board, opponent) +
		(mobility(state, s.mark)-mobility(state, opponent))*mobilityWeight

	return float64(value) + s.selector.noise()
}
