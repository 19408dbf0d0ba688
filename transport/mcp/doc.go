// Package mcp exposes tangosim to AI agents over the Model Context Protocol.
//
// Client is a thin proxy: every tool call becomes a request against the REST
// API and the JSON response is rendered as plain text for the agent.
//
// MCP Tools:
//   - create_session: Create a session from a ruleset and a list of seats
//   - list_sessions: List all active sessions
//   - game_state: Board tiles, scores, pools and whose turn it is
//   - legal_moves: Legal placements and relocations with their score
//   - place_tile: Place a pool tile at a position with a rotation
//   - move_tile: Relocate a tile already on the board (advanced rulesets)
//   - pass_turn: Pass when no legal move exists
//   - advance: Let automated seats play
//   - history: Paginated action history
//   - list_configs: List available rulesets
//   - simulate: Run a batch of automated games
//   - game_rules: The full rules as text
//
// Positions are passed as "q,r" strings.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	http.Handle("/mcp", server.NewStreamableHTTPServer(client.GetMCPServer()))
package mcp
