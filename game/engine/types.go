package engine

// Owner identifies who holds a cell.
type Owner string

const (
	None    Owner = "none"
	PlayerA Owner = "player_a"
	PlayerB Owner = "player_b"
)

const (
	// BoardSize is the fixed board edge length. The capacity scheme and the
	// opponent heuristic both assume this value.
	BoardSize = 5

	// MaxResolveRounds caps chain-reaction resolution. Reachable boards
	// stabilize far below this; hitting the cap signals corrupted state.
	MaxResolveRounds = 512
)

// Opponent returns the other player. Opponent of None is None.
func (o Owner) Opponent() Owner {
	switch o {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return None
	}
}

// IsPlayer reports whether o names an actual player rather than None.
func (o Owner) IsPlayer() bool {
	return o == PlayerA || o == PlayerB
}

// Cell is a single board cell. Count is zero exactly when Owner is None.
type Cell struct {
	Count int   `json:"count"`
	Owner Owner `json:"owner"`
}

// Position is a (row, col) board coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is the 5x5 grid. It is a value type: assignment copies the whole
// grid, which is what gives ApplyMove its snapshot-in, snapshot-out contract.
type Board [BoardSize][BoardSize]Cell

// Scores holds per-player unit totals.
type Scores struct {
	PlayerA int `json:"player_a"`
	PlayerB int `json:"player_b"`
}

// Of returns the total for the given player.
func (s Scores) Of(o Owner) int {
	switch o {
	case PlayerA:
		return s.PlayerA
	case PlayerB:
		return s.PlayerB
	default:
		return 0
	}
}

// GameState is a complete snapshot of a game between moves.
type GameState struct {
	Board       Board  `json:"board"`
	CurrentTurn Owner  `json:"current_turn"`
	MoveCount   int    `json:"move_count"`
	Terminated  bool   `json:"terminated"`
	Winner      Owner  `json:"winner"`
	Scores      Scores `json:"scores"`
}

// MoveOutcome summarizes what a single applied move did to the board.
type MoveOutcome struct {
	Explosions    int `json:"explosions"`     // cells that exploded, over all rounds
	Rounds        int `json:"rounds"`         // resolution rounds until stable
	CapturedUnits int `json:"captured_units"` // opposing units converted by the cascade
}

// MoveRecord is one entry in an engine's move history.
type MoveRecord struct {
	Player     Owner       `json:"player"`
	Position   Position    `json:"position"`
	Outcome    MoveOutcome `json:"outcome"`
	MoveNumber int         `json:"move_number"`
	Timestamp  int64       `json:"timestamp"`
}
