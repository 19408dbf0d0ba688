// Package api provides the HTTP REST API for tangosim sessions.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({config_name, seats, seed})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session with its current state
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board, pools, scores and phase
//   - GET /api/sessions/{id}/legal - Legal placements and relocations of the active player
//   - POST /api/sessions/{id}/place - {player, tile_index, rotation, position, pops}
//   - POST /api/sessions/{id}/move - {player, from, to, rotation, pops} (advanced rulesets)
//   - POST /api/sessions/{id}/pass - {player}
//   - POST /api/sessions/{id}/advance - {max_turns}; steps automated seats
//   - GET /api/sessions/{id}/history - Paginated actions (?page&limit&order)
//
// Configuration:
//   - GET /api/configs - List rulesets
//   - GET /api/configs/{name} - Get a ruleset
//   - POST /api/configs - Save a ruleset
//
// Simulation:
//   - POST /api/simulate - {config_name, strategies, games, seed, keep_raw}
//
// Other:
//   - GET /ws?session={id} - Spectator WebSocket
//   - GET /health
//
// Positions are axial coordinates, {"q": 1, "r": -1}. After every call that
// changes a match, the actions and the new state are pushed to the
// session's spectators.
//
// Error Handling:
//
// Errors are returned as JSON, {"error": "message"}, with the status derived
// from the underlying error: 404 for unknown sessions and rulesets, 409 when
// the game is over or another player is due, 422 for illegal moves and pops,
// 400 for malformed requests.
package api
