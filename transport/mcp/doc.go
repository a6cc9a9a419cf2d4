// Package mcp exposes the Chain Reaction game over the Model Context
// Protocol, so LLM agents can create matches and play moves with tools.
//
// The server sits directly on service.GameService. Tool results are
// plain-text renderings of the board and outcome, designed for an agent
// reading the transcript rather than a UI parsing JSON.
//
// Tools:
//
//   - create_match: start a match (two_player or versus_computer)
//   - list_matches: list active matches
//   - match_state: board, turn, scores
//   - place: put a unit on a cell as one of the players
//   - computer_move: ask the automated side to reply
//   - reset_match: fresh board, same match ID
//   - scores: live unit totals and terminal status
//   - move_history: paginated move log
//   - game_rules: full rules text
//
// A rejected move comes back as a normal tool result describing the
// rejection, not a tool error; tool errors are reserved for unknown
// matches and malformed arguments.
package mcp
