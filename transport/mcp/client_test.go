package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/tangosim/api"
	"github.com/wricardo/tangosim/game/config"
	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/service"
	"github.com/wricardo/tangosim/game/session"
	"github.com/wricardo/tangosim/game/tile"
)

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/ab12/state" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.GameView{SessionID: "ab12", Round: 2})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var view service.GameView
	if err := client.apiCall(context.Background(), "GET", sessionPath("ab12", "state"), nil, &view); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if view.SessionID != "ab12" || view.Round != 2 {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "plain text body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Internal Server Error"))
			},
			want: "API error: 500",
		},
		{
			name: "json error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid move: edges do not match"})
			},
			want: "edges do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		var req service.CreateSessionRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ConfigName != "advanced" || len(req.Seats) != 2 || req.Seats[1] != "lookahead" || req.Seed != 7 {
			t.Errorf("unexpected request %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "test-session-123",
			ConfigName: req.ConfigName,
			Seats:      req.Seats,
			State:      &service.GameView{SessionID: "test-session-123", AwaitingHuman: true},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), callTool("create_session", map[string]any{
		"config_name": "advanced",
		"seats":       []any{"human", "lookahead"},
		"seed":        float64(7),
	}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	text := textOf(t, result)
	for _, want := range []string{"test-session-123", "human, lookahead", "your move"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_handlePlaceTile_InvalidArguments(t *testing.T) {
	client := NewClient("http://localhost:0")

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing session", map[string]any{"player": 0, "tile_index": 1, "position": "0,0"}},
		{"missing player", map[string]any{"session_id": "s", "tile_index": 1, "position": "0,0"}},
		{"bad position", map[string]any{"session_id": "s", "player": 0, "tile_index": 1, "position": "north"}},
		{"bad pop", map[string]any{"session_id": "s", "player": 0, "tile_index": 1, "position": "0,0", "pops": []any{"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.handlePlaceTile(context.Background(), callTool("place_tile", tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError {
				t.Errorf("Expected an error result, got %s", textOf(t, result))
			}
		})
	}
}

func TestFormatGameView(t *testing.T) {
	pos := hex.Position{Q: 1, R: 0}
	placed := tile.Tile{Index: 3, Color: 1, Pattern: tile.Pattern{true, false, true, false, false, false}}
	view := &service.GameView{
		Ruleset:      "simple",
		Mode:         engine.ModeSimple,
		Round:        2,
		Turn:         3,
		Seats:        []string{"human", "greedy"},
		ActivePlayer: 0,
		Board: engine.Snapshot{
			Tiles:     []engine.PlacedTile{{Position: pos, Tile: placed}},
			Scores:    []int{4, 1},
			Available: []hex.Position{{Q: 0, R: -1}, {Q: 2, R: -1}},
		},
		Pools:      [][]tile.Tile{{{Index: 9}}, {}},
		LastAction: &match.Action{Turn: 3, Player: 1, Type: match.ActionPlace, Tile: &placed, Position: &pos, ScoreDelta: 1},
	}

	text := formatGameView(view)
	for _, want := range []string{
		"Ruleset: simple (simple) | Round: 2 | Turn: 3",
		"P0(human)=4 P1(greedy)=1",
		"(1,0) P1 101000",
		"Available positions: 0,-1 2,-1",
		"P0: #9=000000",
		"P1: (empty)",
		"turn 3: P1 placed #3 101000 at (1,0) (+1)",
		"Player 0 to act",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, text)
		}
	}

	view.Finished = true
	view.Result = &match.Result{Scores: []int{4, 4}, Winner: -1, Reason: match.ReasonStalemate}
	if text := formatGameView(view); !strings.Contains(text, "GAME OVER (stalemate): tie at [4 4]") {
		t.Errorf("Expected tie banner, got:\n%s", text)
	}

	if formatGameView(nil) != "No game state available" {
		t.Error("nil view should render a placeholder")
	}
}

func TestFormatTurnResult_Warning(t *testing.T) {
	text := formatTurnResult(&service.TurnResult{Warning: "automated turn: context canceled"})
	if !strings.Contains(text, "⚠️ automated turn: context canceled") {
		t.Errorf("Expected the warning in the output, got:\n%s", text)
	}
	if strings.Contains(formatTurnResult(&service.TurnResult{}), "⚠️") {
		t.Error("No warning expected for a clean turn")
	}
}

func TestRotationFor(t *testing.T) {
	pool := []tile.Tile{{Index: 5, Pattern: tile.Pattern{true, true, false, false, false, false}}}

	for r := range hex.Sides {
		p := engine.Placement{Tile: pool[0].Rotate(r)}
		if got := rotationFor(pool, p); got != r {
			t.Errorf("rotationFor(rotation %d) = %d", r, got)
		}
	}

	if got := rotationFor(pool, engine.Placement{Tile: tile.Tile{Index: 99}}); got != 0 {
		t.Errorf("unknown tile rotation = %d, want 0", got)
	}
}

func TestFormatLegalMoves(t *testing.T) {
	moves := &service.LegalMoves{Player: 1}
	for i := range maxListedMoves + 5 {
		moves.Placements = append(moves.Placements, engine.Placement{Position: hex.Position{Q: i}, Score: 1})
	}

	text := formatLegalMoves(moves, nil)
	if !strings.Contains(text, "Placements (45)") || !strings.Contains(text, "... 5 more") {
		t.Errorf("Expected truncated placements, got:\n%s", text)
	}

	text = formatLegalMoves(&service.LegalMoves{Player: 0, CanPass: true}, nil)
	if !strings.Contains(text, "pass_turn is allowed") {
		t.Errorf("Expected pass hint, got:\n%s", text)
	}
}

func TestClient_handleGameRules(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameRules(context.Background(), callTool("game_rules", nil))
	if err != nil {
		t.Fatalf("handleGameRules failed: %v", err)
	}

	text := textOf(t, result)
	for _, section := range []string{"BOARD:", "TILES:", "PLACING:", "SCORING:", "POPS:", "ADVANCED RULESETS:", "END OF GAME:"} {
		if !strings.Contains(text, section) {
			t.Errorf("Expected %q in rules", section)
		}
	}
}

// TestClient_Integration plays a turn through the real REST API.
func TestClient_Integration(t *testing.T) {
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config.NewManager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(svc, nil))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	var info service.SessionInfo
	if err := client.apiCall(ctx, "POST", "/api/sessions", service.CreateSessionRequest{
		Seats: []string{"human", "greedy"},
		Seed:  3,
	}, &info); err != nil {
		t.Fatalf("create session: %v", err)
	}

	result, err := client.handleLegalMoves(ctx, callTool("legal_moves", map[string]any{"session_id": info.ID}))
	if err != nil || result.IsError {
		t.Fatalf("legal_moves failed: %v %s", err, textOf(t, result))
	}
	if text := textOf(t, result); !strings.Contains(text, "Legal moves for player 0") {
		t.Errorf("unexpected legal moves output:\n%s", text)
	}

	var moves service.LegalMoves
	if err := client.apiCall(ctx, "GET", sessionPath(info.ID, "legal"), nil, &moves); err != nil {
		t.Fatalf("legal: %v", err)
	}
	if len(moves.Placements) == 0 {
		t.Fatal("Expected legal placements on the first turn")
	}
	first := moves.Placements[0]

	result, err = client.handlePlaceTile(ctx, callTool("place_tile", map[string]any{
		"session_id": info.ID,
		"player":     float64(0),
		"tile_index": float64(first.Tile.Index),
		"rotation":   float64(rotationFor(info.State.Pools[0], first)),
		"position":   first.Position.String(),
		"intent":     "open in the centre",
	}))
	if err != nil {
		t.Fatalf("place_tile: %v", err)
	}
	text := textOf(t, result)
	if result.IsError {
		t.Fatalf("place_tile rejected: %s", text)
	}
	if !strings.Contains(text, "turn 1: P0 placed") || !strings.Contains(text, "turn 2: P1") {
		t.Errorf("Expected own action and the automated reply, got:\n%s", text)
	}

	result, err = client.handleHistory(ctx, callTool("history", map[string]any{"session_id": info.ID, "limit": float64(1)}))
	if err != nil || result.IsError {
		t.Fatalf("history failed: %v", err)
	}
	if text := textOf(t, result); !strings.Contains(text, "Page 1/2") {
		t.Errorf("unexpected history output:\n%s", text)
	}

	result, err = client.handlePassTurn(ctx, callTool("pass_turn", map[string]any{"session_id": info.ID, "player": float64(1)}))
	if err != nil {
		t.Fatalf("pass_turn: %v", err)
	}
	if !result.IsError {
		t.Error("Passing for the automated seat should be rejected")
	}

	start := time.Now()
	result, err = client.handleSimulate(ctx, callTool("simulate", map[string]any{"games": float64(4), "seed": float64(1)}))
	if err != nil || result.IsError {
		t.Fatalf("simulate failed: %v", err)
	}
	if text := textOf(t, result); !strings.Contains(text, "SIMULATION RESULTS (4 games") {
		t.Errorf("unexpected simulation report:\n%s", text)
	}
	t.Logf("simulation took %s", time.Since(start))
}
