package engine

import "fmt"

// Resolve runs chain-reaction resolution to a fixed point and returns the
// stable board. mover is the player whose placement triggered resolution;
// every cell touched by an explosion converts to that player's color,
// including cells the mover's own earlier overflows had claimed.
//
// Each round processes all over-capacity cells simultaneously: first every
// exploding cell is emptied, then each pushes one unit into each of its
// neighbors. Doing the resets before the increments makes the result
// independent of iteration order when two cells explode into each other in
// the same round.
//
// Explosions conserve units on reachable boards (an exploding cell holds
// exactly its capacity, which equals its neighbor count), so resolution
// provably terminates. The round cap is a guard against corrupted state: if
// it is ever hit, Resolve reports ErrResolutionRunaway instead of spinning.
func Resolve(b Board, mover Owner) (Board, MoveOutcome, error) {
	var outcome MoveOutcome

	for round := 0; round < MaxResolveRounds; round++ {
		exploding := overCapacity(b)
		if len(exploding) == 0 {
			outcome.Rounds = round
			return b, outcome, nil
		}

		for _, pos := range exploding {
			b[pos.Row][pos.Col] = Cell{}
		}
		for _, pos := range exploding {
			for _, n := range NeighborsOf(pos.Row, pos.Col) {
				cell := &b[n.Row][n.Col]
				if cell.Owner != mover && cell.Owner != None {
					outcome.CapturedUnits += cell.Count
				}
				cell.Count++
				cell.Owner = mover
			}
		}
		outcome.Explosions += len(exploding)
	}

	return b, outcome, fmt.Errorf("%w after %d rounds", ErrResolutionRunaway, MaxResolveRounds)
}

// overCapacity collects every cell whose count has reached its capacity.
func overCapacity(b Board) []Position {
	var cells []Position
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col].Count >= CapacityAt(row, col) {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}
	return cells
}
