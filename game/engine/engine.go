package engine

import (
	"errors"
	"fmt"
	"time"
)

// Rejections: expected, recoverable, and guaranteed not to have touched the
// state. Callers typically ignore the move and wait for a legal one.
var (
	ErrGameFinished = errors.New("game already finished")
	ErrOutOfTurn    = errors.New("not this player's turn")
	ErrCellTaken    = errors.New("cell owned by the opponent")
)

// Invariant violations: these indicate a bug in game logic, not a bad input,
// and must surface loudly rather than be swallowed.
var (
	ErrOutOfBounds       = errors.New("coordinates outside the board")
	ErrResolutionRunaway = errors.New("explosion resolution did not stabilize")
)

// IsRejection reports whether err is an expected no-op rejection as opposed
// to an invariant violation.
func IsRejection(err error) bool {
	return errors.Is(err, ErrGameFinished) || errors.Is(err, ErrOutOfTurn) || errors.Is(err, ErrCellTaken)
}

// NewGame returns a fresh game state: empty board, PlayerA to move.
func NewGame() GameState {
	return GameState{
		CurrentTurn: PlayerA,
		Winner:      None,
	}
}

// ApplyMove validates and applies one placement for player at (row, col),
// returning the next state. On a rejection the input state is returned
// unchanged alongside the sentinel error. The whole effect sequence commits
// atomically: placement, resolution, score update, termination check and
// turn flip all happen on a private copy of the board.
func ApplyMove(state GameState, row, col int, player Owner) (GameState, MoveOutcome, error) {
	if !InBounds(row, col) {
		return state, MoveOutcome{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	if state.Terminated {
		return state, MoveOutcome{}, ErrGameFinished
	}
	if player != state.CurrentTurn {
		return state, MoveOutcome{}, ErrOutOfTurn
	}
	if target := state.Board[row][col]; target.Owner != None && target.Owner != player {
		return state, MoveOutcome{}, ErrCellTaken
	}

	board := state.Board
	board[row][col].Count++
	board[row][col].Owner = player

	board, outcome, err := Resolve(board, player)
	if err != nil {
		return state, MoveOutcome{}, err
	}

	state.Board = board
	state.MoveCount++
	state.Scores = ScoresOf(board)

	if winner := CheckTermination(board, state.MoveCount); winner != None {
		state.Terminated = true
		state.Winner = winner
	} else {
		state.CurrentTurn = player.Opponent()
	}

	return state, outcome, nil
}

// Engine provides a stateful handle over the pure game transitions.
type Engine interface {
	// Game state access
	State() GameState
	Board() Board
	CurrentTurn() Owner
	Scores() Scores
	IsOver() bool
	Winner() Owner

	// Game operations
	Apply(row, col int, player Owner) (GameState, error)
	Reset() GameState

	// History
	History() []MoveRecord
	LastMove() *MoveRecord
}

// GameEngine implements the Engine interface. It owns a single GameState
// between moves and records a cumulative move history across resets.
type GameEngine struct {
	state   GameState
	history []MoveRecord
	total   int
}

// NewGameEngine creates an engine holding a fresh game.
func NewGameEngine() *GameEngine {
	return &GameEngine{state: NewGame()}
}

// State returns the current game state snapshot.
func (e *GameEngine) State() GameState {
	return e.state
}

// Board returns a copy of the current board.
func (e *GameEngine) Board() Board {
	return e.state.Board
}

// CurrentTurn returns the player whose move it is.
func (e *GameEngine) CurrentTurn() Owner {
	return e.state.CurrentTurn
}

// Scores returns the current per-player unit totals.
func (e *GameEngine) Scores() Scores {
	return e.state.Scores
}

// IsOver returns whether the game has terminated.
func (e *GameEngine) IsOver() bool {
	return e.state.Terminated
}

// Winner returns the winning player, or None while the game is live.
func (e *GameEngine) Winner() Owner {
	return e.state.Winner
}

// Apply runs ApplyMove against the held state and records the move in the
// history when it commits. Rejections leave both state and history untouched.
func (e *GameEngine) Apply(row, col int, player Owner) (GameState, error) {
	next, outcome, err := ApplyMove(e.state, row, col, player)
	if err != nil {
		return e.state, err
	}

	e.state = next
	e.total++
	e.history = append(e.history, MoveRecord{
		Player:     player,
		Position:   Position{Row: row, Col: col},
		Outcome:    outcome,
		MoveNumber: e.total,
		Timestamp:  time.Now().Unix(),
	})

	return e.state, nil
}

// Reset starts a new game. The cumulative move history is preserved.
func (e *GameEngine) Reset() GameState {
	e.state = NewGame()
	return e.state
}

// History returns the cumulative move history.
func (e *GameEngine) History() []MoveRecord {
	return e.history
}

// LastMove returns the most recent move, or nil if none have been made.
func (e *GameEngine) LastMove() *MoveRecord {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}
