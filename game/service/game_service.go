package service

import (
	"context"
	"time"

	"github.com/gridgames/chainreaction/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Match management
	CreateMatch(ctx context.Context, mode Mode) (*MatchInfo, error)
	GetMatch(ctx context.Context, matchID string) (*MatchInfo, error)
	ListMatches(ctx context.Context) ([]*MatchInfo, error)
	DeleteMatch(ctx context.Context, matchID string) error

	// Game operations
	Move(ctx context.Context, matchID string, row, col int, player engine.Owner) (*MoveResult, error)
	ComputerMove(ctx context.Context, matchID string) (*MoveResult, error)
	Reset(ctx context.Context, matchID string) (*engine.GameState, error)

	// Game state
	GetGameState(ctx context.Context, matchID string) (*engine.GameState, error)
	GetScores(ctx context.Context, matchID string) (*ScoreReport, error)
	GetMoveHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error)
}

// MatchManager defines match storage operations
type MatchManager interface {
	Create(mode Mode, computerSide engine.Owner) (*Match, error)
	Get(id string) (*Match, error)
	List() []*Match
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// Match represents an active game between two sides
type Match struct {
	ID             string
	Mode           Mode
	Engine         *engine.GameEngine
	ComputerSide   engine.Owner // None in two-player mode
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
