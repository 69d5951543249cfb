package xxxo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMove(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		move  Position
		mark  Mark
		want  int
	}{
		{
			name:  "single piece scores nothing",
			board: parseBoard(".....", ".....", "..X.."),
			move:  pos(2, 2),
			mark:  X,
			want:  0,
		},
		{
			name:  "completing four at the end of a row",
			board: parseBoard(".....", ".....", "XXXX."),
			move:  pos(2, 3),
			mark:  X,
			want:  1,
		},
		{
			name:  "completing four from the middle",
			board: parseBoard("XXXX."),
			move:  pos(0, 1),
			mark:  X,
			want:  1,
		},
		{
			name:  "extending a scored four to five adds one",
			board: parseBoard("XXXXX"),
			move:  pos(0, 4),
			mark:  X,
			want:  1,
		},
		{
			name:  "joining two pairs into a fresh five",
			board: parseBoard("OOOOO"),
			move:  pos(0, 2),
			mark:  O,
			want:  2,
		},
		{
			name:  "joining three and one into a fresh five",
			board: parseBoard("XXXXX"),
			move:  pos(0, 3),
			mark:  X,
			want:  2,
		},
		{
			name: "five across and four down through the same cell",
			board: parseBoard(
				"..X..",
				"..X..",
				"XXXXX",
				"..X..",
			),
			move: pos(2, 2),
			mark: X,
			want: 3,
		},
		{
			name: "rising diagonal",
			board: parseBoard(
				".....",
				"...X.",
				"..X..",
				".X...",
				"X....",
			),
			move: pos(1, 3),
			mark: X,
			want: 1,
		},
		{
			name: "falling diagonal five",
			board: parseBoard(
				"O....",
				".O...",
				"..O..",
				"...O.",
				"....O",
			),
			move: pos(2, 2),
			mark: O,
			want: 2,
		},
		{
			name:  "opponent marks never count",
			board: parseBoard("OOOOX"),
			move:  pos(0, 4),
			mark:  X,
			want:  0,
		},
		{
			name:  "a three is not a scoring line",
			board: parseBoard("XXX.X"),
			move:  pos(0, 2),
			mark:  X,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreMove(tt.board, tt.move, tt.mark))
		})
	}
}

func TestLinePoints(t *testing.T) {
	tests := []struct {
		run, prior, want int
	}{
		{run: 1, prior: 0, want: 0},
		{run: 3, prior: 2, want: 0},
		{run: 4, prior: 3, want: 1},
		{run: 4, prior: 2, want: 1},
		{run: 4, prior: 4, want: 0},
		{run: 5, prior: 2, want: 2},
		{run: 5, prior: 3, want: 2},
		{run: 5, prior: 4, want: 1},
		{run: 5, prior: 5, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, linePoints(tt.run, tt.prior), "run %d prior %d", tt.run, tt.prior)
	}
}

func TestScoreMove_NoDoubleCountAcrossSequence(t *testing.T) {
	// Given: X builds row 0 one cell at a time, from left to right
	var board Board
	var earned []int

	// When: each placement is scored right after it is made
	for col := 0; col < Size; col++ {
		board = board.Place(pos(0, col), X)
		earned = append(earned, ScoreMove(board, pos(0, col), X))
	}

	// Then: the fourth cell earns 1 and the fifth only 1 more
	assert.Equal(t, []int{0, 0, 0, 1, 1}, earned)
}
