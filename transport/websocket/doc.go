// Package websocket provides the push channel that keeps game clients
// re-rendering as a Chain Reaction match progresses.
//
// The package uses a hub-and-spoke model: a central Hub tracks every open
// connection grouped by match ID, and the API layer broadcasts the full
// GameState after each applied move. Clients never drive the game over the
// socket; moves arrive through the REST API and the socket only carries
// state updates outward.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - {match_id, event: "state_update", game_state: {...}} after each move
//   - {match_id, event: <custom>, data: {...}} for ad-hoc events
//
// Connection Lifecycle:
//
//  1. Client connects with ?match=<id>
//  2. Connection registered with hub
//  3. State updates broadcast to every client on the same match
//  4. Disconnection (or a full send buffer) triggers cleanup
//
// Concurrency:
//
// The hub event loop serializes registration and unregistration; each client
// gets a dedicated read and write pump goroutine with ping/pong keepalive.
package websocket
