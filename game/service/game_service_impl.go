package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gridgames/chainreaction/game/ai"
	"github.com/gridgames/chainreaction/game/engine"
)

// ErrNotComputerMatch is returned when ComputerMove targets a two-player match.
var ErrNotComputerMatch = errors.New("match has no automated side")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	matches  MatchManager
	opponent *ai.Opponent
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(matches MatchManager, opponent *ai.Opponent) GameService {
	return &gameServiceImpl{
		matches:  matches,
		opponent: opponent,
	}
}

// CreateMatch creates a new match in the given mode. The automated side,
// when present, always plays PlayerB so the human opens.
func (s *gameServiceImpl) CreateMatch(ctx context.Context, mode Mode) (*MatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.Valid() {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	computerSide := engine.None
	if mode == ModeVersusComputer {
		computerSide = engine.PlayerB
	}

	match, err := s.matches.Create(mode, computerSide)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return matchInfo(match), nil
}

// GetMatch retrieves match information
func (s *gameServiceImpl) GetMatch(ctx context.Context, matchID string) (*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.matches.UpdateLastAccessed(matchID)
	return matchInfo(match), nil
}

// ListMatches returns all active matches
func (s *gameServiceImpl) ListMatches(ctx context.Context) ([]*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.matches.List()
	result := make([]*MatchInfo, 0, len(matches))
	for _, m := range matches {
		result = append(result, matchInfo(m))
	}
	return result, nil
}

// DeleteMatch removes a match
func (s *gameServiceImpl) DeleteMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.matches.Delete(matchID)
}

// Move applies one placement for player. Engine rejections come back as an
// unapplied MoveResult rather than an error so transports can simply relay
// them; only missing matches and invariant violations produce errors.
func (s *gameServiceImpl) Move(ctx context.Context, matchID string, row, col int, player engine.Owner) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	return s.applyMove(match, row, col, player)
}

// ComputerMove asks the automated opponent for a placement and applies it
// through the same path a human move takes.
func (s *gameServiceImpl) ComputerMove(ctx context.Context, matchID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	if match.ComputerSide == engine.None {
		return nil, ErrNotComputerMatch
	}

	state := match.Engine.State()
	if state.Terminated {
		return &MoveResult{
			Applied:      false,
			RejectReason: RejectGameFinished,
			Player:       match.ComputerSide,
			GameState:    state,
		}, nil
	}

	pos, ok := s.opponent.ChooseMove(match.Engine.Board(), match.ComputerSide)
	if !ok {
		return &MoveResult{
			Applied:      false,
			RejectReason: RejectNoLegalMove,
			Player:       match.ComputerSide,
			GameState:    state,
		}, nil
	}

	return s.applyMove(match, pos.Row, pos.Col, match.ComputerSide)
}

// Reset restarts a match
func (s *gameServiceImpl) Reset(ctx context.Context, matchID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.matches.UpdateLastAccessed(matchID)
	state := match.Engine.Reset()
	return &state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, matchID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.matches.UpdateLastAccessed(matchID)
	state := match.Engine.State()
	return &state, nil
}

// GetScores exposes live totals so the presentation layer never re-derives
// scoring logic.
func (s *gameServiceImpl) GetScores(ctx context.Context, matchID string) (*ScoreReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	state := match.Engine.State()
	return &ScoreReport{
		Scores:     state.Scores,
		MoveCount:  state.MoveCount,
		Terminated: state.Terminated,
		Winner:     state.Winner,
	}, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	history := match.Engine.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveRecord
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}
	if moves == nil {
		moves = []engine.MoveRecord{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// applyMove runs the engine transition and translates the outcome into a
// MoveResult. Callers hold the service lock.
func (s *gameServiceImpl) applyMove(match *Match, row, col int, player engine.Owner) (*MoveResult, error) {
	state, err := match.Engine.Apply(row, col, player)

	if err != nil {
		if engine.IsRejection(err) {
			return &MoveResult{
				Applied:      false,
				RejectReason: rejectReason(err),
				Player:       player,
				Move:         &engine.Position{Row: row, Col: col},
				GameState:    state,
			}, nil
		}
		// Invariant violation: bad coordinates or a runaway cascade.
		return nil, err
	}

	last := match.Engine.LastMove()
	result := &MoveResult{
		Applied:   true,
		Player:    player,
		Move:      &engine.Position{Row: row, Col: col},
		Outcome:   last.Outcome,
		GameState: state,
		Events:    moveEvents(player, *last, state),
	}
	return result, nil
}

// matchInfo snapshots a match for transport responses.
func matchInfo(m *Match) *MatchInfo {
	return &MatchInfo{
		ID:             m.ID,
		Mode:           m.Mode,
		ComputerSide:   m.ComputerSide,
		CreatedAt:      m.CreatedAt,
		LastAccessedAt: m.LastAccessedAt,
		GameState:      m.Engine.State(),
	}
}

// rejectReason maps engine rejection sentinels onto wire-friendly codes.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, engine.ErrGameFinished):
		return RejectGameFinished
	case errors.Is(err, engine.ErrOutOfTurn):
		return RejectOutOfTurn
	case errors.Is(err, engine.ErrCellTaken):
		return RejectCellTaken
	default:
		return "rejected"
	}
}

// moveEvents generates presentation events from an applied move.
func moveEvents(player engine.Owner, move engine.MoveRecord, state engine.GameState) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      "placed",
		Message:   fmt.Sprintf("%s placed at (%d,%d)", player, move.Position.Row, move.Position.Col),
		Timestamp: now,
		Position:  move.Position,
	}}

	if move.Outcome.Explosions > 0 {
		events = append(events, GameEvent{
			Type: "explosion",
			Message: fmt.Sprintf("%d cells exploded over %d rounds",
				move.Outcome.Explosions, move.Outcome.Rounds),
			Timestamp: now,
			Position:  move.Position,
		})
	}

	if move.Outcome.CapturedUnits > 0 {
		events = append(events, GameEvent{
			Type:      "capture",
			Message:   fmt.Sprintf("%s captured %d units", player, move.Outcome.CapturedUnits),
			Timestamp: now,
			Position:  move.Position,
		})
	}

	if state.Terminated {
		events = append(events, GameEvent{
			Type: "game_over",
			Message: fmt.Sprintf("%s wins with %d units after %d moves",
				state.Winner, state.Scores.Of(state.Winner), state.MoveCount),
			Timestamp: now,
		})
	}

	return events
}
