package xxxo

import "fmt"

// Size is the side length of the board.
const Size = 5

type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoPosition is returned by selectors that were asked to move without a legal move.
var NoPosition = Position{Row: -1, Col: -1}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Touches reports whether q is p itself or one of its 8 neighbours.
func (p Position) Touches(q Position) bool {
	return abs(p.Row-q.Row) <= 1 && abs(p.Col-q.Col) <= 1
}

func (p Position) step(d Position, n int) Position {
	return Position{Row: p.Row + d.Row*n, Col: p.Col + d.Col*n}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type Board [Size][Size]Mark

func (b Board) At(p Position) Mark {
	return b[p.Row][p.Col]
}

func (b Board) IsEmpty(p Position) bool {
	return b[p.Row][p.Col] == Empty
}

// Place returns a copy of the board with mark written at p.
// Writing into an occupied cell is a contract violation and panics.
func (b Board) Place(p Position, mark Mark) Board {
	if !b.IsEmpty(p) {
		panic(fmt.Sprintf("xxxo: place %s on occupied cell %s", mark, p))
	}

	b[p.Row][p.Col] = mark

	return b
}

func (b Board) CountEmpty() int {
	count := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == Empty {
				count++
			}
		}
	}

	return count
}

// EmptyCells lists empty cells in row-major order.
func (b Board) EmptyCells() []Position {
	cells := make([]Position, 0, Size*Size)
	for row := range b {
		for col := range b[row] {
			if b[row][col] == Empty {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}

	return cells
}

// runFrom counts consecutive cells holding mark, starting next to p and walking along d.
func (b Board) runFrom(p, d Position, mark Mark) int {
	count := 0
	for next := p.step(d, 1); next.InBounds() && b.At(next) == mark; next = next.step(d, 1) {
		count++
	}

	return count
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
