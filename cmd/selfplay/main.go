// Command selfplay runs automated Chain Reaction games between two copies of
// the heuristic opponent and prints aggregate statistics. It is a quick
// sanity harness for the rules: every game must terminate, every cascade
// must settle, and the winner must be the side that eliminated the other.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gridgames/chainreaction/game/ai"
	"github.com/gridgames/chainreaction/game/engine"
)

var (
	games   = flag.Int("games", 100, "Number of games to play")
	seed    = flag.Int64("seed", 1, "Base seed; game i uses seed+i for each side")
	verbose = flag.Bool("v", false, "Print a line per game")
)

// gameStats holds the result of a single self-play game.
type gameStats struct {
	winner    engine.Owner
	moves     int
	maxRounds int
}

func main() {
	flag.Parse()

	var (
		winsA, winsB, stalled int
		totalMoves            int
		maxRounds             int
	)

	for i := 0; i < *games; i++ {
		stats, err := playGame(*seed + int64(i))
		if err != nil {
			log.Fatalf("game %d: %v", i, err)
		}

		switch stats.winner {
		case engine.PlayerA:
			winsA++
		case engine.PlayerB:
			winsB++
		default:
			stalled++
		}

		totalMoves += stats.moves
		if stats.maxRounds > maxRounds {
			maxRounds = stats.maxRounds
		}

		if *verbose {
			fmt.Printf("game %3d: winner=%-8s moves=%3d maxCascadeRounds=%d\n",
				i, stats.winner, stats.moves, stats.maxRounds)
		}
	}

	fmt.Printf("\n=== Self-Play Results (%d games) ===\n", *games)
	fmt.Printf("player_a wins: %d\n", winsA)
	fmt.Printf("player_b wins: %d\n", winsB)
	if stalled > 0 {
		fmt.Printf("unfinished:    %d\n", stalled)
	}
	fmt.Printf("avg moves per game: %.1f\n", float64(totalMoves)/float64(*games))
	fmt.Printf("longest cascade: %d rounds\n", maxRounds)
}

// moveCap bounds a single game. Self-play between these heuristics finishes
// far sooner; hitting the cap means the rules or the opponent regressed.
const moveCap = 2000

// playGame runs one full game between two independently seeded opponents and
// verifies the board stays consistent after every move.
func playGame(seed int64) (gameStats, error) {
	eng := engine.NewGameEngine()
	players := map[engine.Owner]*ai.Opponent{
		engine.PlayerA: ai.NewOpponentWithSeed(seed),
		engine.PlayerB: ai.NewOpponentWithSeed(seed + 7919),
	}

	stats := gameStats{winner: engine.None}

	for !eng.IsOver() {
		if eng.State().MoveCount >= moveCap {
			return stats, fmt.Errorf("no winner after %d moves", moveCap)
		}

		side := eng.CurrentTurn()
		pos, ok := players[side].ChooseMove(eng.Board(), side)
		if !ok {
			return stats, fmt.Errorf("%s has no legal move on a live board", side)
		}

		if _, err := eng.Apply(pos.Row, pos.Col, side); err != nil {
			return stats, fmt.Errorf("%s at (%d,%d): %w", side, pos.Row, pos.Col, err)
		}
		if last := eng.LastMove(); last != nil && last.Outcome.Rounds > stats.maxRounds {
			stats.maxRounds = last.Outcome.Rounds
		}

		if err := checkBoard(eng.Board()); err != nil {
			return stats, err
		}
	}

	stats.winner = eng.Winner()
	stats.moves = eng.State().MoveCount
	return stats, nil
}

// checkBoard verifies the settled-board invariants: no cell at or above its
// capacity, and no occupied cell without an owner.
func checkBoard(b engine.Board) error {
	for row := 0; row < engine.BoardSize; row++ {
		for col := 0; col < engine.BoardSize; col++ {
			cell := b[row][col]
			if cell.Count >= engine.CapacityAt(row, col) {
				return fmt.Errorf("cell (%d,%d) settled at %d with capacity %d",
					row, col, cell.Count, engine.CapacityAt(row, col))
			}
			if cell.Count > 0 && cell.Owner == engine.None {
				return fmt.Errorf("cell (%d,%d) has %d units but no owner", row, col, cell.Count)
			}
			if cell.Count == 0 && cell.Owner != engine.None {
				return fmt.Errorf("cell (%d,%d) is empty but owned by %s", row, col, cell.Owner)
			}
		}
	}
	return nil
}
