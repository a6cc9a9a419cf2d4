package engine

// InBounds reports whether (row, col) addresses a cell on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// CapacityAt returns the explosion threshold for a cell, which equals its
// number of orthogonal neighbors: 2 in a corner, 3 on an edge, 4 inside.
func CapacityAt(row, col int) int {
	capacity := 4
	if row == 0 || row == BoardSize-1 {
		capacity--
	}
	if col == 0 || col == BoardSize-1 {
		capacity--
	}
	return capacity
}

// NeighborsOf returns the in-bounds orthogonal neighbors of (row, col).
// No diagonals, no wraparound: 2 to 4 positions depending on location.
func NeighborsOf(row, col int) []Position {
	directions := []struct{ dr, dc int }{
		{-1, 0}, // up
		{1, 0},  // down
		{0, -1}, // left
		{0, 1},  // right
	}

	neighbors := make([]Position, 0, 4)
	for _, dir := range directions {
		r, c := row+dir.dr, col+dir.dc
		if InBounds(r, c) {
			neighbors = append(neighbors, Position{Row: r, Col: c})
		}
	}
	return neighbors
}

// ManhattanDistance calculates the Manhattan distance between two positions.
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Center returns the board's central cell, (2,2) on the 5x5 grid.
func Center() Position {
	return Position{Row: BoardSize / 2, Col: BoardSize / 2}
}

// TotalUnits counts every unit on the board regardless of owner.
func TotalUnits(b Board) int {
	total := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			total += b[row][col].Count
		}
	}
	return total
}

// ScoresOf derives per-player unit totals from the board.
func ScoresOf(b Board) Scores {
	var s Scores
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			cell := b[row][col]
			switch cell.Owner {
			case PlayerA:
				s.PlayerA += cell.Count
			case PlayerB:
				s.PlayerB += cell.Count
			}
		}
	}
	return s
}

// CheckTermination applies the elimination win rule. It returns the winner,
// or None while the game is still live. No winner is ever declared before
// both players have moved: after a single opening move the opponent has zero
// units by construction, not by defeat.
func CheckTermination(b Board, moveCount int) Owner {
	if moveCount < 2 {
		return None
	}

	scores := ScoresOf(b)
	if scores.PlayerA == 0 && scores.PlayerB == 0 {
		return None
	}
	if scores.PlayerA == 0 {
		return PlayerB
	}
	if scores.PlayerB == 0 {
		return PlayerA
	}
	return None
}
