package service

import (
	"time"

	"github.com/gridgames/chainreaction/game/engine"
)

// Mode selects who controls PlayerB.
type Mode string

const (
	ModeTwoPlayer      Mode = "two_player"
	ModeVersusComputer Mode = "versus_computer"
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m == ModeTwoPlayer || m == ModeVersusComputer
}

// Rejection reason codes carried on MoveResult when Applied is false.
const (
	RejectGameFinished = "game_finished"
	RejectOutOfTurn    = "out_of_turn"
	RejectCellTaken    = "cell_taken"
	RejectNoLegalMove  = "no_legal_move"
)

// MatchInfo provides information about a match
type MatchInfo struct {
	ID             string           `json:"id"`
	Mode           Mode             `json:"mode"`
	ComputerSide   engine.Owner     `json:"computer_side,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	GameState      engine.GameState `json:"game_state"`
}

// MoveResult contains the result of a move operation. A rejected move is
// not an error: Applied is false, RejectReason says why, and the state is
// the unchanged snapshot the caller can keep rendering.
type MoveResult struct {
	Applied      bool               `json:"applied"`
	RejectReason string             `json:"reject_reason,omitempty"`
	Player       engine.Owner       `json:"player"`
	Move         *engine.Position   `json:"move,omitempty"`
	Outcome      engine.MoveOutcome `json:"outcome"`
	GameState    engine.GameState   `json:"game_state"`
	Events       []GameEvent        `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during a move
type GameEvent struct {
	Type      string          `json:"type"` // "placed", "explosion", "capture", "game_over"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// ScoreReport exposes live totals and terminal status for rendering.
type ScoreReport struct {
	Scores     engine.Scores `json:"scores"`
	MoveCount  int           `json:"move_count"`
	Terminated bool          `json:"terminated"`
	Winner     engine.Owner  `json:"winner"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}
