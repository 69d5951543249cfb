package ai

import "github.com/rocketscienceinc/xxxo-backend/internal/xxxo"

const (
	window = xxxo.Size

	gainWeight     = 120
	threatWeight   = 110
	mobilityWeight = 2

	// decisive dominates any heuristic value a 5x5 board can produce.
	decisive = 99999
)

var center = xxxo.Position{Row: xxxo.Size / 2, Col: xxxo.Size / 2}

// positionalEvaluation sums over every full 5-cell window: own² when the
// opponent is absent from it, minus opp² when only the opponent is present.
func positionalEvaluation(board xxxo.Board, mark xxxo.Mark) int {
	opponent := mark.Opponent()
	total := 0

	for row := 0; row < xxxo.Size; row++ {
		for col := 0; col < xxxo.Size; col++ {
			for _, d := range xxxo.Directions {
				own, opp, ok := countWindow(board, xxxo.Position{Row: row, Col: col}, d, mark, opponent)
				if !ok {
					continue
				}

				switch {
				case opp == 0:
					total += own * own
				case own == 0:
					total -= opp * opp
				}
			}
		}
	}

	return total
}

func countWindow(board xxxo.Board, start, d xxxo.Position, mark, opponent xxxo.Mark) (int, int, bool) {
	own, opp := 0, 0

	for i := 0; i < window; i++ {
		p := xxxo.Position{Row: start.Row + d.Row*i, Col: start.Col + d.Col*i}
		if !p.InBounds() {
			return 0, 0, false
		}

		switch board.At(p) {
		case mark:
			own++
		case opponent:
			opp++
		}
	}

	return own, opp, true
}

// centerBias favours cells close to the middle of the board: 4 at the center, 0 in the corners.
func centerBias(p xxxo.Position) int {
	return 2*(xxxo.Size/2) - abs(p.Row-center.Row) - abs(p.Col-center.Col)
}

// bestReply is the highest immediate score mark can make on board.
func bestReply(board xxxo.Board, mark xxxo.Mark, last xxxo.LastMove) int {
	best := 0
	for _, p := range xxxo.LegalMoves(board, mark, last) {
		best = max(best, xxxo.ScoreMove(board.Place(p, mark), p, mark))
	}

	return best
}

func mobility(state xxxo.State, mark xxxo.Mark) int {
	return len(xxxo.LegalMoves(state.Board, mark, state.LastMove))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
