package ai

import (
	"testing"

	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
	"github.com/stretchr/testify/assert"
)

func TestPositionalEvaluation(t *testing.T) {
	var empty xxxo.Board
	assert.Equal(t, 0, positionalEvaluation(empty, xxxo.X))

	center := empty.Place(xxxo.Position{Row: 2, Col: 2}, xxxo.X)
	assert.Equal(t, 4, positionalEvaluation(center, xxxo.X), "row, column and both diagonals")
	assert.Equal(t, -4, positionalEvaluation(center, xxxo.O))

	corner := empty.Place(xxxo.Position{Row: 0, Col: 0}, xxxo.X)
	assert.Equal(t, 3, positionalEvaluation(corner, xxxo.X), "row, column and one diagonal")

	// Row 0 holds both marks and counts for nobody.
	mixed := boardOf("XO...")
	assert.Equal(t, 1, positionalEvaluation(mixed, xxxo.X))
	assert.Equal(t, -1, positionalEvaluation(mixed, xxxo.O))
}

func TestCenterBias(t *testing.T) {
	assert.Equal(t, 4, centerBias(xxxo.Position{Row: 2, Col: 2}))
	assert.Equal(t, 3, centerBias(xxxo.Position{Row: 1, Col: 2}))
	assert.Equal(t, 0, centerBias(xxxo.Position{Row: 0, Col: 0}))
	assert.Equal(t, 0, centerBias(xxxo.Position{Row: 4, Col: 4}))
}

func TestBestReply(t *testing.T) {
	board := boardOf("OOO..")

	assert.Equal(t, 1, bestReply(board, xxxo.O, xxxo.LastMove{}))
	assert.Equal(t, 0, bestReply(board, xxxo.O, xxxo.LastMove{O: at(0, 2)}), "the scoring cell touches the last move")
	assert.Equal(t, 0, bestReply(board, xxxo.X, xxxo.LastMove{}))
}
