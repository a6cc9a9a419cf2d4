package engine

import (
	"testing"
)

func TestResolve_StableBoardUnchanged(t *testing.T) {
	var b Board
	b[0][0] = Cell{Count: 1, Owner: PlayerA}
	b[2][2] = Cell{Count: 3, Owner: PlayerB}

	resolved, outcome, err := Resolve(b, PlayerA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != b {
		t.Error("stable board should come back unchanged")
	}
	if outcome.Explosions != 0 || outcome.Rounds != 0 {
		t.Errorf("expected zero outcome on stable board, got %+v", outcome)
	}
}

func TestResolve_SingleCornerExplosion(t *testing.T) {
	var b Board
	b[0][0] = Cell{Count: 2, Owner: PlayerA} // at corner capacity

	resolved, outcome, err := Resolve(b, PlayerA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved[0][0] != (Cell{}) {
		t.Errorf("exploded cell should be empty, got %+v", resolved[0][0])
	}
	for _, n := range []Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}} {
		cell := resolved[n.Row][n.Col]
		if cell.Count != 1 || cell.Owner != PlayerA {
			t.Errorf("neighbor %+v = %+v, want count 1 owned by PlayerA", n, cell)
		}
	}
	if outcome.Explosions != 1 {
		t.Errorf("expected 1 explosion, got %d", outcome.Explosions)
	}
}

func TestResolve_ChainReaction(t *testing.T) {
	// Corner explosion pushes into an edge cell already one below capacity,
	// so the cascade continues within the same resolution.
	var b Board
	b[0][0] = Cell{Count: 2, Owner: PlayerA}
	b[0][1] = Cell{Count: 2, Owner: PlayerB} // edge capacity 3

	before := TotalUnits(b)
	resolved, outcome, err := Resolve(b, PlayerA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved[0][0].Count != 1 || resolved[0][0].Owner != PlayerA {
		t.Errorf("corner should hold the chain's backwash, got %+v", resolved[0][0])
	}
	if resolved[0][1] != (Cell{}) {
		t.Errorf("chained cell should be empty, got %+v", resolved[0][1])
	}
	for _, n := range []Position{{Row: 0, Col: 2}, {Row: 1, Col: 1}} {
		cell := resolved[n.Row][n.Col]
		if cell.Owner != PlayerA || cell.Count != 1 {
			t.Errorf("cascade target %+v = %+v, want count 1 owned by PlayerA", n, cell)
		}
	}
	if outcome.Explosions != 2 {
		t.Errorf("expected 2 explosions, got %d", outcome.Explosions)
	}
	if outcome.Rounds < 2 {
		t.Errorf("expected at least 2 rounds, got %d", outcome.Rounds)
	}
	if after := TotalUnits(resolved); after != before {
		t.Errorf("units not conserved: before %d, after %d", before, after)
	}
}

func TestResolve_MutualExplosionIsOrderIndependent(t *testing.T) {
	// Two adjacent cells at capacity explode into each other in the same
	// round. Simultaneous semantics: both empty first, then each receives
	// one unit from the other.
	var b Board
	b[0][0] = Cell{Count: 2, Owner: PlayerA}
	b[1][0] = Cell{Count: 3, Owner: PlayerB} // edge capacity 3

	before := TotalUnits(b)
	resolved, _, err := Resolve(b, PlayerA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved[0][0].Count != 1 || resolved[0][0].Owner != PlayerA {
		t.Errorf("cell (0,0) = %+v, want count 1 owned by PlayerA", resolved[0][0])
	}
	if resolved[1][0].Count != 1 || resolved[1][0].Owner != PlayerA {
		t.Errorf("cell (1,0) = %+v, want count 1 owned by PlayerA", resolved[1][0])
	}
	if after := TotalUnits(resolved); after != before {
		t.Errorf("units not conserved: before %d, after %d", before, after)
	}
}

func TestResolve_ConvertsOwnership(t *testing.T) {
	var b Board
	b[2][2] = Cell{Count: 4, Owner: PlayerA} // interior capacity 4
	b[2][1] = Cell{Count: 1, Owner: PlayerB}
	b[1][2] = Cell{Count: 2, Owner: PlayerB}

	resolved, outcome, err := Resolve(b, PlayerA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, n := range NeighborsOf(2, 2) {
		if owner := resolved[n.Row][n.Col].Owner; owner != PlayerA {
			t.Errorf("neighbor %+v owner = %s, want PlayerA", n, owner)
		}
	}
	if outcome.CapturedUnits != 3 {
		t.Errorf("expected 3 captured units, got %d", outcome.CapturedUnits)
	}
}

func TestResolve_PostConditionHoldsOnDenseBoards(t *testing.T) {
	// Fill the board to one unit below capacity everywhere, then push one
	// cell over. The cascade is long but must stabilize below every
	// capacity and never approach the round cap.
	var b Board
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			owner := PlayerA
			if (row+col)%2 == 1 {
				owner = PlayerB
			}
			b[row][col] = Cell{Count: CapacityAt(row, col) - 1, Owner: owner}
		}
	}
	b[2][2].Count++

	resolved, outcome, err := Resolve(b, PlayerB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if resolved[row][col].Count >= CapacityAt(row, col) {
				t.Errorf("cell (%d,%d) at %d >= capacity %d after resolution",
					row, col, resolved[row][col].Count, CapacityAt(row, col))
			}
		}
	}
	if outcome.Rounds >= MaxResolveRounds/2 {
		t.Errorf("resolution used %d rounds, uncomfortably close to the cap", outcome.Rounds)
	}
}
