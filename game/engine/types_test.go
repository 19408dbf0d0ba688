package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

func TestModeAndScoringConstants(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{string(ModeSimple), "simple"},
		{string(ModeAdvanced), "advanced"},
		{string(ScoreSameColor), "same_color"},
		{string(ScoreAnyColor), "any_color"},
		{TileSetStandard, "standard"},
		{TileSetCustom, "custom"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestSnapshotJSONMarshaling(t *testing.T) {
	s := MustNew(SimpleRuleset())
	s = mustPlace(t, s, mustTile(t, "101010", 0), hex.Origin)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Failed to marshal state: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}

	if len(snap.Tiles) != 1 || snap.Tiles[0].Position != hex.Origin {
		t.Errorf("unexpected tiles %+v", snap.Tiles)
	}
	if snap.Tiles[0].Tile.Pattern.String() != "101010" {
		t.Errorf("pattern lost in round trip: %v", snap.Tiles[0].Tile)
	}
	if len(snap.Available) != 6 {
		t.Errorf("expected 6 available positions, got %d", len(snap.Available))
	}
	if snap.Mode != ModeSimple {
		t.Errorf("Mode = %q", snap.Mode)
	}
	if len(snap.TileCounts) != 2 || snap.TileCounts[0] != 1 || snap.TileCounts[1] != 0 {
		t.Errorf("TileCounts = %v, want [1 0]", snap.TileCounts)
	}
	if strings.Contains(string(data), `"enclosed"`) {
		t.Errorf("empty enclosed list should be omitted: %s", data)
	}
}

func TestSnapshotEnclosed(t *testing.T) {
	placed := map[hex.Position]tile.Tile{}
	for _, p := range hex.Neighbors(hex.Origin) {
		placed[p] = mustTile(t, "000000", 0)
	}
	snap := board(t, SimpleRuleset(), placed).Snapshot()

	if len(snap.Enclosed) != 1 || len(snap.Enclosed[0]) != 1 || snap.Enclosed[0][0] != hex.Origin {
		t.Errorf("Enclosed = %v, want [[(0,0)]]", snap.Enclosed)
	}
}

func TestRulesetJSONMarshaling(t *testing.T) {
	r := AdvancedRuleset()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Failed to marshal ruleset: %v", err)
	}

	for _, key := range []string{`"mode":"advanced"`, `"scoring":"same_color"`, `"start_positions":[{"q":0,"r":0}]`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
	if strings.Contains(string(data), "custom_patterns") {
		t.Errorf("custom_patterns should be omitted when empty: %s", data)
	}
}
