// Package api provides the REST surface for the Chain Reaction game server.
//
// The server is a thin HTTP adapter over service.GameService: handlers decode
// the request, call the service, and encode the result. Game rules never leak
// into this package.
//
// Routes:
//
//	POST   /api/matches                  - create a match (two_player or versus_computer)
//	GET    /api/matches                  - list active matches
//	GET    /api/matches/{id}             - match info
//	DELETE /api/matches/{id}             - delete a match
//	GET    /api/matches/{id}/state       - current game state
//	GET    /api/matches/{id}/scores      - live unit totals and terminal status
//	POST   /api/matches/{id}/move        - place a unit {row, col, player}
//	POST   /api/matches/{id}/computer-move - ask the automated side to reply
//	POST   /api/matches/{id}/reset       - fresh board, same match ID
//	GET    /api/matches/{id}/history     - paginated move history
//	GET    /health                       - liveness probe
//	       /ws?match=<id>                - WebSocket state updates
//
// Error Model:
//
// A rejected move (wrong turn, occupied cell, finished game) is a normal
// 200 response with applied=false and a reject_reason code. HTTP error
// statuses are reserved for malformed requests, unknown matches, and
// invariant violations inside the engine.
//
// After every applied move the server broadcasts the full GameState to all
// WebSocket clients watching the match, so UIs re-render without polling.
package api
