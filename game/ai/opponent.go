// Package ai implements the heuristic automated opponent for the Chain
// Reaction engine. It scores every legal placement for its side and picks
// randomly among the top-scored few, so play stays strong but not
// deterministic enough to exploit.
package ai

import (
	"math/rand"
	"sort"
	"time"

	"github.com/gridgames/chainreaction/game/engine"
)

// Heuristic weights. Tuned for the fixed 5x5 board.
const (
	explosionBonus    = 100 // placement triggers an explosion
	capturePerCell    = 20  // per opponent neighbor an explosion would hit
	primedPenalty     = -30 // placement leaves the cell one unit from exploding
	centerWeight      = 5   // multiplied by (4 - distance from center)
	reinforceBonus    = 15  // placement stacks on an already-owned cell
	defensiveBonus    = 25  // some opponent neighbor is one placement from exploding
	topCandidateSlice = 3   // random pick happens among this many best moves
)

// Opponent chooses moves for the automated side. The zero value is not
// usable; construct with NewOpponent or NewOpponentWithSeed.
type Opponent struct {
	rng *rand.Rand
}

// NewOpponent returns an opponent with time-seeded randomness.
func NewOpponent() *Opponent {
	return NewOpponentWithSeed(time.Now().UnixNano())
}

// NewOpponentWithSeed returns an opponent with deterministic tie-breaking,
// used by tests and self-play analysis.
func NewOpponentWithSeed(seed int64) *Opponent {
	return &Opponent{rng: rand.New(rand.NewSource(seed))}
}

type candidate struct {
	pos   engine.Position
	score int
}

// ChooseMove scores every legal placement for self on the board and returns
// one of the best. The second result is false when no legal candidate
// exists, which is practically unreachable under the rules but must not
// panic. ChooseMove never mutates the board; the caller feeds the returned
// coordinate through the regular move path.
func (o *Opponent) ChooseMove(b engine.Board, self engine.Owner) (engine.Position, bool) {
	candidates := o.rankCandidates(b, self)
	if len(candidates) == 0 {
		return engine.Position{}, false
	}

	slice := topCandidateSlice
	if len(candidates) < slice {
		slice = len(candidates)
	}
	pick := candidates[o.rng.Intn(slice)]
	return pick.pos, true
}

// rankCandidates returns all legal placements sorted by descending score.
func (o *Opponent) rankCandidates(b engine.Board, self engine.Owner) []candidate {
	var candidates []candidate
	for row := 0; row < engine.BoardSize; row++ {
		for col := 0; col < engine.BoardSize; col++ {
			cell := b[row][col]
			if cell.Owner != engine.None && cell.Owner != self {
				continue
			}
			candidates = append(candidates, candidate{
				pos:   engine.Position{Row: row, Col: col},
				score: scorePlacement(b, row, col, self),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates
}

// scorePlacement rates placing one unit at (row, col) for self.
func scorePlacement(b engine.Board, row, col int, self engine.Owner) int {
	cell := b[row][col]
	capacity := engine.CapacityAt(row, col)
	opponent := self.Opponent()
	neighbors := engine.NeighborsOf(row, col)

	score := 0

	if cell.Count+1 >= capacity {
		// The move explodes immediately; opponent neighbors get captured.
		score += explosionBonus
		for _, n := range neighbors {
			if b[n.Row][n.Col].Owner == opponent {
				score += capturePerCell
			}
		}
	} else if cell.Count+2 >= capacity {
		// One unit short of exploding: a primed cell the opponent can
		// capture with their next placement.
		score += primedPenalty
	}

	score += (4 - engine.ManhattanDistance(engine.Position{Row: row, Col: col}, engine.Center())) * centerWeight

	if cell.Owner == self {
		score += reinforceBonus
	}

	// Pre-emptive strike preference: an opponent neighbor about to blow is
	// worth pressuring now. Deliberately asymmetric; there is no matching
	// self-protection term.
	for _, n := range neighbors {
		neighbor := b[n.Row][n.Col]
		if neighbor.Owner == opponent && neighbor.Count+1 >= engine.CapacityAt(n.Row, n.Col) {
			score += defensiveBonus
			break
		}
	}

	return score
}
