package xxxo

// plentyOfRoom is the empty-cell count above which scoring is assumed reachable.
const plentyOfRoom = 12

// HasLegalMove reports whether mark has an empty cell outside its own last move's neighbourhood.
func HasLegalMove(board Board, mark Mark, last LastMove) bool {
	for row := range board {
		for col := range board[row] {
			pos := Position{Row: row, Col: col}
			if board.IsEmpty(pos) && !last.Blocks(mark, pos) {
				return true
			}
		}
	}

	return false
}

// LegalMoves lists every cell mark may play, in row-major order.
func LegalMoves(board Board, mark Mark, last LastMove) []Position {
	moves := make([]Position, 0, Size*Size)
	for _, pos := range board.EmptyCells() {
		if !last.Blocks(mark, pos) {
			moves = append(moves, pos)
		}
	}

	return moves
}

// PointsStillPossible is a one-ply lookahead: true when either player has a
// legal cell whose placement would score right away. With more than
// plentyOfRoom empty cells it answers true without looking.
func PointsStillPossible(board Board, last LastMove) bool {
	if board.CountEmpty() > plentyOfRoom {
		return true
	}

	for _, mark := range []Mark{X, O} {
		for _, pos := range LegalMoves(board, mark, last) {
			if ScoreMove(board.Place(pos, mark), pos, mark) > 0 {
				return true
			}
		}
	}

	return false
}
