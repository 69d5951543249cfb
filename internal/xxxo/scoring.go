package xxxo

const (
	shortRun = 4
	longRun  = 5
)

// Directions are horizontal, vertical, diagonal down-right and diagonal up-right.
var Directions = [4]Position{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: -1, Col: 1},
}

// ScoreMove returns the points earned by the placement of mark at pos.
// The board must already hold mark at pos. Only the four lines through pos are probed.
func ScoreMove(board Board, pos Position, mark Mark) int {
	total := 0

	for _, d := range Directions {
		forward := board.runFrom(pos, d, mark)
		backward := board.runFrom(pos, Position{Row: -d.Row, Col: -d.Col}, mark)

		total += linePoints(1+forward+backward, max(forward, backward))
	}

	return total
}

// linePoints scores one direction given the run through the new piece and
// the longest run that existed on that line before it was placed.
func linePoints(run, priorRun int) int {
	switch {
	case run >= longRun:
		switch {
		case priorRun >= longRun:
			return 0
		case priorRun == shortRun:
			return 1
		default:
			return 2
		}
	case run == shortRun:
		if priorRun < shortRun {
			return 1
		}

		return 0
	default:
		return 0
	}
}
