package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/service"
	"github.com/wricardo/tangosim/game/simulator"
	"github.com/wricardo/tangosim/game/strategy"
	"github.com/wricardo/tangosim/game/tile"
)

// maxListedMoves caps the legal moves printed per category.
const maxListedMoves = 40

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			// Simulations can take a while
			Timeout: 2 * time.Minute,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"tangosim",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`tangosim - MCP Interface

A hexagonal tile-laying game. This is a thin client that proxies every call to
the tangosim REST API.

TYPICAL FLOW:
1. list_configs to pick a ruleset, then create_session with seats such as
   ["human", "greedy"]. You play the "human" seats.
2. game_state and legal_moves before each turn.
3. place_tile (or move_tile in advanced rulesets). Automated seats reply
   immediately and the result lists their actions.
4. pass_turn is only accepted when no legal move exists.

Call game_rules for the full rules.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionID := mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID"))
	player := mcp.WithNumber("player", mcp.Required(), mcp.Description("Your seat number (0-based)"))
	pops := mcp.WithArray("pops",
		mcp.Description(`Positions to pop, in order, when several tiles pop at once (each "q,r")`),
		mcp.WithStringItems())
	intent := mcp.WithString("intent",
		mcp.Description("Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)"))

	// Session management
	c.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new game session"),
		mcp.WithString("config_name", mcp.Description("Ruleset to use (optional, see list_configs)")),
		mcp.WithArray("seats",
			mcp.Description(`One entry per player: "human" or a strategy (`+strings.Join(strategy.Automated(), ", ")+`). Defaults to a human against greedy`),
			mcp.WithStringItems()),
		mcp.WithNumber("seed", mcp.Description("Seed for the automated seats (optional)")),
	), c.handleCreateSession)

	c.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active game sessions"),
	), c.handleListSessions)

	// Game operations
	c.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the board, scores, pools and whose turn it is"),
		sessionID,
	), c.handleGameState)

	c.mcpServer.AddTool(mcp.NewTool("legal_moves",
		mcp.WithDescription("List the legal placements (and relocations in advanced rulesets) of the active player with their immediate score"),
		sessionID,
	), c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.NewTool("place_tile",
		mcp.WithDescription("Place a tile from your pool on the board"),
		sessionID,
		player,
		mcp.WithNumber("tile_index", mcp.Required(), mcp.Description("Index of the tile in your pool")),
		mcp.WithNumber("rotation", mcp.Description("Clockwise rotation steps (0-5), default 0")),
		mcp.WithString("position", mcp.Required(), mcp.Description(`Target position as "q,r"`)),
		pops,
		intent,
	), c.handlePlaceTile)

	c.mcpServer.AddTool(mcp.NewTool("move_tile",
		mcp.WithDescription("Relocate one of your tiles on the board (advanced rulesets only)"),
		sessionID,
		player,
		mcp.WithString("from", mcp.Required(), mcp.Description(`Current position of your tile as "q,r"`)),
		mcp.WithString("to", mcp.Required(), mcp.Description(`Destination as "q,r"`)),
		mcp.WithNumber("rotation", mcp.Description("Clockwise rotation steps applied while moving (0-5), default 0")),
		pops,
		intent,
	), c.handleMoveTile)

	c.mcpServer.AddTool(mcp.NewTool("pass_turn",
		mcp.WithDescription("Pass your turn. Only accepted when you have no legal move"),
		sessionID,
		player,
	), c.handlePassTurn)

	c.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Let automated seats play. Useful for sessions without human seats"),
		sessionID,
		mcp.WithNumber("max_turns", mcp.Description("Turns to play, 0 for as many as possible (default 1)")),
	), c.handleAdvance)

	c.mcpServer.AddTool(mcp.NewTool("history",
		mcp.WithDescription("View past actions, newest first"),
		sessionID,
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Actions per page (default 20)")),
	), c.handleHistory)

	// Configuration
	c.mcpServer.AddTool(mcp.NewTool("list_configs",
		mcp.WithDescription("List available rulesets"),
	), c.handleListConfigs)

	c.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run a batch of automated games and report win rates and score distributions"),
		mcp.WithString("config_name", mcp.Description("Ruleset to use (optional)")),
		mcp.WithArray("strategies",
			mcp.Description("One strategy per player (default greedy for every seat)"),
			mcp.WithStringEnumItems(strategy.Automated())),
		mcp.WithNumber("games", mcp.Description("Number of games (default 1000)")),
		mcp.WithNumber("seed", mcp.Description("Seed for reproducible runs (optional)")),
	), c.handleSimulate)

	c.mcpServer.AddTool(mcp.NewTool("game_rules",
		mcp.WithDescription("Get the complete game rules"),
	), c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(id string, parts ...string) string {
	p := "/api/sessions/" + url.PathEscape(id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func parsePops(raw []string) ([]hex.Position, error) {
	var out []hex.Position
	for _, s := range raw {
		p, err := hex.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := service.CreateSessionRequest{
		ConfigName: request.GetString("config_name", ""),
		Seats:      request.GetStringSlice("seats", nil),
		Seed:       int64(request.GetInt("seed", 0)),
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.State != nil && s.State.Finished {
			status = "finished"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Seats: %s, %s, Created: %s)\n",
			s.ID, s.ConfigName, strings.Join(s.Seats, "/"), status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state service.GameView
	if err := c.apiCall(ctx, "GET", sessionPath(id, "state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameView(&state)), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var moves service.LegalMoves
	if err := c.apiCall(ctx, "GET", sessionPath(id, "legal"), nil, &moves); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Pools are needed to express placements as pool rotations
	var state service.GameView
	if err := c.apiCall(ctx, "GET", sessionPath(id, "state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var pool []tile.Tile
	if moves.Player < len(state.Pools) {
		pool = state.Pools[moves.Player]
	}
	return mcp.NewToolResultText(formatLegalMoves(&moves, pool)), nil
}

func (c *Client) handlePlaceTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := request.RequireInt("player")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := request.RequireInt("tile_index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pos, err := hex.Parse(request.GetString("position", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pops, err := parsePops(request.GetStringSlice("pops", nil))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := service.PlaceRequest{
		Player:    player,
		TileIndex: index,
		Rotation:  request.GetInt("rotation", 0),
		Position:  pos,
		Pops:      pops,
	}

	var result service.TurnResult
	if err := c.apiCall(ctx, "POST", sessionPath(id, "place"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTurnResult(&result)), nil
}

func (c *Client) handleMoveTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := request.RequireInt("player")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := hex.Parse(request.GetString("from", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := hex.Parse(request.GetString("to", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pops, err := parsePops(request.GetStringSlice("pops", nil))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := service.MoveRequest{
		Player:   player,
		From:     from,
		To:       to,
		Rotation: request.GetInt("rotation", 0),
		Pops:     pops,
	}

	var result service.TurnResult
	if err := c.apiCall(ctx, "POST", sessionPath(id, "move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTurnResult(&result)), nil
}

func (c *Client) handlePassTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := request.RequireInt("player")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.TurnResult
	if err := c.apiCall(ctx, "POST", sessionPath(id, "pass"), map[string]int{"player": player}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTurnResult(&result)), nil
}

func (c *Client) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]int{"max_turns": request.GetInt("max_turns", 1)}

	var result service.TurnResult
	if err := c.apiCall(ctx, "POST", sessionPath(id, "advance"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTurnResult(&result)), nil
}

func (c *Client) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(id, "history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Rulesets:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s", cfg.ConfigID)
		if cfg.Builtin {
			b.WriteString(" (built-in)")
		}
		fmt.Fprintf(&b, "\n  %s\n  Players: %d, Mode: %s, Scoring: %s\n\n",
			cfg.Description, cfg.Players, cfg.Mode, cfg.Scoring)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := service.SimulateRequest{
		ConfigName: request.GetString("config_name", ""),
		Strategies: request.GetStringSlice("strategies", nil),
		Games:      request.GetInt("games", 0),
		Seed:       int64(request.GetInt("seed", 0)),
	}

	var results simulator.SimulationResults
	if err := c.apiCall(ctx, "POST", "/api/simulate", body, &results); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (seed %d)\n", results.RunID, results.Seed)
	simulator.WriteReport(&b, &results, nil)
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameRules), nil
}

const gameRules = `tangosim - Complete Rules

BOARD:
The board is a grid of hexagons addressed by axial coordinates "q,r".
The six neighbours of (q,r), clockwise from the top side, are:
  side 0: (q,r-1)   side 1: (q+1,r-1)   side 2: (q+1,r)
  side 3: (q,r+1)   side 4: (q-1,r+1)   side 5: (q-1,r)
Side i of a tile touches side (i+3) mod 6 of the neighbour across it.

TILES:
A tile has six sides, each marked (1) or blank (0), written clockwise from the
top, e.g. "110100". Each player owns a pool of tiles in their colour.
Rotating a tile by one step shifts its pattern one side clockwise.

PLACING:
- The first tiles go on the ruleset's start positions, usually (0,0).
- Later tiles go on an empty position next to the board ("available").
- Every shared edge must agree: both sides marked or both blank.
- A single empty cell surrounded on all six sides is closed: nothing can be
  placed there.

SCORING:
- One point for every shared edge where both sides are marked. Under the
  default "same_color" scoring the neighbour must be your own colour; under
  "any_color" every marked edge counts.
- Some rulesets add a bonus for every tile popped on your turn.

POPS:
A tile pops when all six neighbours are occupied and every edge agrees. It
leaves the board and returns to its owner's pool. When several tiles pop at
once you choose the order (the "pops" argument); otherwise the first
candidate is used.

ADVANCED RULESETS:
Instead of placing, you may relocate one of your own tiles already on the
board. It may travel up to as many hexes as it has marked sides, may be
rotated, and must land on an available position whose edges agree.

TURNS AND PASSING:
Players act in seat order. A player with no legal action passes; a pass is
refused while a legal move exists.

END OF GAME:
- A player who empties their pool while holding (a share of) the top score
  ends the game.
- A full round in which every player passes ends it in a stalemate.
- The ruleset's round limit ends it as well.
The highest score wins; equal top scores are a tie.`

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nSeats: %s\nSeed: %d\nCreated: %s\n\n%s",
		info.ID, info.ConfigName, strings.Join(info.Seats, ", "), info.Seed,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameView(info.State))
}

func formatGameView(state *service.GameView) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ruleset: %s (%s) | Round: %d | Turn: %d | Phase: %s\n",
		state.Ruleset, state.Mode, state.Round, state.Turn, state.Phase)

	b.WriteString("Scores:")
	for p, score := range state.Board.Scores {
		seat := ""
		if p < len(state.Seats) {
			seat = state.Seats[p]
		}
		fmt.Fprintf(&b, " P%d(%s)=%d", p, seat, score)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Board (%d tiles):\n", len(state.Board.Tiles))
	for _, pt := range state.Board.Tiles {
		fmt.Fprintf(&b, "  %v P%d %s\n", pt.Position, pt.Tile.Color, pt.Tile.Pattern)
	}
	if len(state.Board.Tiles) == 0 {
		b.WriteString("  (empty)\n")
	}

	fmt.Fprintf(&b, "\nAvailable positions: %s\n", formatPositions(state.Board.Available))
	for _, region := range state.Board.Enclosed {
		fmt.Fprintf(&b, "Enclosed region: %s\n", formatPositions(region))
	}

	b.WriteString("\nPools:\n")
	for p, pool := range state.Pools {
		fmt.Fprintf(&b, "  P%d:", p)
		for _, t := range pool {
			fmt.Fprintf(&b, " #%d=%s", t.Index, t.Pattern)
		}
		if len(pool) == 0 {
			b.WriteString(" (empty)")
		}
		b.WriteString("\n")
	}

	if state.LastAction != nil {
		fmt.Fprintf(&b, "\nLast action: %s\n", formatAction(*state.LastAction))
	}

	switch {
	case state.Finished && state.Result != nil:
		if state.Result.Winner < 0 {
			fmt.Fprintf(&b, "\nGAME OVER (%s): tie at %v", state.Result.Reason, state.Result.Scores)
		} else {
			fmt.Fprintf(&b, "\nGAME OVER (%s): player %d wins with %v", state.Result.Reason, state.Result.Winner, state.Result.Scores)
		}
	case state.AwaitingHuman:
		fmt.Fprintf(&b, "\nPlayer %d to act (your move)", state.ActivePlayer)
	default:
		fmt.Fprintf(&b, "\nPlayer %d to act", state.ActivePlayer)
	}

	return b.String()
}

func formatPositions(ps []hex.Position) string {
	if len(ps) == 0 {
		return "none"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%d,%d", p.Q, p.R)
	}
	return strings.Join(parts, " ")
}

func formatAction(a match.Action) string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d: P%d ", a.Turn, a.Player)
	switch a.Type {
	case match.ActionPlace:
		fmt.Fprintf(&b, "placed #%d %s at %v", a.Tile.Index, a.Tile.Pattern, *a.Position)
	case match.ActionMove:
		fmt.Fprintf(&b, "moved #%d from %v to %v as %s", a.Tile.Index, *a.Origin, *a.Position, a.Tile.Pattern)
	default:
		b.WriteString("passed")
	}
	if a.ScoreDelta != 0 {
		fmt.Fprintf(&b, " (+%d)", a.ScoreDelta)
	}
	for _, popped := range a.Popped {
		fmt.Fprintf(&b, ", popped P%d #%d at %v", popped.Tile.Color, popped.Tile.Index, popped.Position)
	}
	return b.String()
}

func formatTurnResult(result *service.TurnResult) string {
	var b strings.Builder
	for _, a := range result.Actions {
		b.WriteString("✓ " + formatAction(a) + "\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", result.Message)
	}
	if result.Warning != "" {
		fmt.Fprintf(&b, "\n⚠️ %s\n", result.Warning)
	}
	b.WriteString("\n" + formatGameView(result.State))
	return b.String()
}

// rotationFor finds the clockwise rotation of the pool tile that yields the
// orientation of a legal placement.
func rotationFor(pool []tile.Tile, p engine.Placement) int {
	t, ok := tile.FindByIndex(pool, p.Tile.Index)
	if !ok {
		return 0
	}
	for r := range hex.Sides {
		if t.Pattern.Rotate(r) == p.Tile.Pattern {
			return r
		}
	}
	return 0
}

func formatLegalMoves(moves *service.LegalMoves, pool []tile.Tile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Legal moves for player %d\n\n", moves.Player)

	fmt.Fprintf(&b, "Placements (%d):\n", len(moves.Placements))
	for i, p := range moves.Placements {
		if i == maxListedMoves {
			fmt.Fprintf(&b, "  ... %d more\n", len(moves.Placements)-i)
			break
		}
		fmt.Fprintf(&b, "  tile_index=%d rotation=%d position=%d,%d -> %s score +%d\n",
			p.Tile.Index, rotationFor(pool, p), p.Position.Q, p.Position.R, p.Tile.Pattern, p.Score)
	}

	if len(moves.Relocations) > 0 {
		fmt.Fprintf(&b, "\nRelocations (%d):\n", len(moves.Relocations))
		for i, r := range moves.Relocations {
			if i == maxListedMoves {
				fmt.Fprintf(&b, "  ... %d more\n", len(moves.Relocations)-i)
				break
			}
			fmt.Fprintf(&b, "  from=%d,%d to=%d,%d as %s score +%d\n",
				r.From.Q, r.From.R, r.To.Q, r.To.R, r.Tile.Pattern, r.Score)
		}
	}

	if moves.CanPass {
		b.WriteString("\nNo legal move: pass_turn is allowed.\n")
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, a := range history.Actions {
		fmt.Fprintf(&b, "%s | scores %v\n", formatAction(a), a.Scores)
	}
	if len(history.Actions) == 0 {
		b.WriteString("(no actions yet)\n")
	}

	return b.String()
}
