package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wricardo/tangosim/api"
	"github.com/wricardo/tangosim/game/config"
	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/service"
	"github.com/wricardo/tangosim/game/session"
	"github.com/wricardo/tangosim/game/tile"
)

func pattern(t *testing.T, s string) tile.Pattern {
	t.Helper()
	p, err := tile.ParsePattern(s)
	if err != nil {
		t.Fatalf("ParsePattern(%q): %v", s, err)
	}
	return p
}

func TestSystematicStrategy_Choose(t *testing.T) {
	pool := []tile.Tile{
		{Index: 1, Pattern: pattern(t, "100000")},
		{Index: 2, Pattern: pattern(t, "111000")},
	}
	own := engine.PlacedTile{Position: hex.Position{Q: 1, R: 0}, Tile: tile.Tile{Index: 7, Pattern: pattern(t, "110000")}}
	state := &service.GameView{
		Board: engine.Snapshot{Tiles: []engine.PlacedTile{own}},
		Pools: [][]tile.Tile{pool, nil},
	}

	tests := []struct {
		name  string
		moves service.LegalMoves
		check func(t *testing.T, c Choice)
	}{
		{
			name: "highest score wins",
			moves: service.LegalMoves{Placements: []engine.Placement{
				{Tile: pool[0], Position: hex.Position{Q: 0, R: 0}, Score: 1},
				{Tile: tile.Tile{Index: 2, Pattern: pool[1].Pattern.Rotate(2)}, Position: hex.Position{Q: 5, R: 5}, Score: 2},
			}},
			check: func(t *testing.T, c Choice) {
				if c.Place == nil || c.Place.TileIndex != 2 || c.Place.Rotation != 2 {
					t.Errorf("Expected tile 2 rotated twice, got %+v", c.Place)
				}
			},
		},
		{
			name: "ties prefer own neighbours",
			moves: service.LegalMoves{Placements: []engine.Placement{
				{Tile: pool[1], Position: hex.Position{Q: -3, R: 0}},
				{Tile: pool[0], Position: hex.Position{Q: 2, R: 0}},
			}},
			check: func(t *testing.T, c Choice) {
				if c.Place == nil || c.Place.Position != (hex.Position{Q: 2, R: 0}) {
					t.Errorf("Expected the position next to the own tile, got %+v", c.Place)
				}
			},
		},
		{
			name: "relocation only when it scores more",
			moves: service.LegalMoves{
				Placements:  []engine.Placement{{Tile: pool[0], Position: hex.Position{Q: 0, R: 0}, Score: 1}},
				Relocations: []engine.Relocation{{Tile: tile.Tile{Index: 7, Pattern: own.Tile.Pattern.Rotate(1)}, From: own.Position, To: hex.Position{Q: 2, R: -1}, Score: 3}},
			},
			check: func(t *testing.T, c Choice) {
				if c.Move == nil || c.Move.From != own.Position || c.Move.Rotation != 1 {
					t.Errorf("Expected the relocation, got %+v / %+v", c.Place, c.Move)
				}
			},
		},
		{
			name: "equal relocation is skipped",
			moves: service.LegalMoves{
				Placements:  []engine.Placement{{Tile: pool[0], Position: hex.Position{Q: 0, R: 0}, Score: 3}},
				Relocations: []engine.Relocation{{Tile: own.Tile, From: own.Position, To: hex.Position{Q: 2, R: -1}, Score: 3}},
			},
			check: func(t *testing.T, c Choice) {
				if c.Place == nil || c.Move != nil {
					t.Errorf("Expected the placement, got %+v / %+v", c.Place, c.Move)
				}
			},
		},
		{
			name:  "nothing legal passes",
			moves: service.LegalMoves{CanPass: true},
			check: func(t *testing.T, c Choice) {
				if c.Place != nil || c.Move != nil {
					t.Errorf("Expected a pass, got %+v", c)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewSystematicStrategy(0).Choose(state, &tt.moves))
		})
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "session not found: nope"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.sessionID = "nope"

	_, err := client.GetState()
	if err == nil || !strings.Contains(err.Error(), "session not found") {
		t.Errorf("Expected session not found error, got %v", err)
	}
}

func TestPlayGame(t *testing.T) {
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config.NewManager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(svc, nil))
	defer server.Close()

	for _, ruleset := range []string{"simple", "advanced"} {
		t.Run(ruleset, func(t *testing.T) {
			client := NewClient(server.URL)
			info, err := client.CreateSession(ruleset, []string{service.SeatHuman, "random"}, 9)
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}

			state, err := PlayGame(client, info.State, 0, 3000, false)
			if err != nil {
				t.Fatalf("PlayGame failed: %v", err)
			}
			if !state.Finished || state.Result == nil {
				t.Fatalf("Expected a finished game, got %+v", state)
			}

			final, err := client.GetState()
			if err != nil {
				t.Fatalf("GetState failed: %v", err)
			}
			if final.Turn != state.Turn {
				t.Errorf("Server state turn %d differs from played turn %d", final.Turn, state.Turn)
			}
		})
	}
}
