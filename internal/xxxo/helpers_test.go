package xxxo

// parseBoard reads rows like "X.O..": '.' is an empty cell.
func parseBoard(rows ...string) Board {
	var board Board
	for row, line := range rows {
		for col, ch := range line {
			switch ch {
			case 'X':
				board[row][col] = X
			case 'O':
				board[row][col] = O
			}
		}
	}

	return board
}

func at(row, col int) *Position {
	return &Position{Row: row, Col: col}
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}
