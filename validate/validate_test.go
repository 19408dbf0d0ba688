package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/tangosim/game/engine"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestFile_ValidConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "duel.json", `{
		"name": "duel",
		"description": "Test configuration",
		"players": 2,
		"mode": "simple",
		"scoring": "same_color",
		"max_rounds": 50
	}`)

	result := File(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Problems)
	}
	if result.Err() != nil {
		t.Errorf("Expected nil Err(), got %v", result.Err())
	}
	if result.File != "duel.json" {
		t.Errorf("Expected file name duel.json, got %s", result.File)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Standard set should have no warnings, got %v", result.Warnings)
	}

	info := strings.Join(result.Info, "\n")
	for _, want := range []string{"✓ Name: duel", "✓ Players: 2", "✓ Tiles per player: 13"} {
		if !strings.Contains(info, want) {
			t.Errorf("Expected %q in info, got:\n%s", want, info)
		}
	}
}

func TestFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "party.yaml", `
name: party
players: 4
scoring: any_color
pop_bonus: 3
start_positions:
  - {q: 0, r: 0}
  - {q: 3, r: -3}
`)

	result := File(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, got %v", result.Problems)
	}
	if !strings.Contains(strings.Join(result.Info, "\n"), "✓ Start positions: 2") {
		t.Errorf("Expected two start positions, got %v", result.Info)
	}
}

func TestFile_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		problems int
		want     string
	}{
		{
			name:     "invalid json",
			file:     "bad.json",
			content:  `{"name": "test", invalid json}`,
			problems: 1,
			want:     "invalid JSON",
		},
		{
			name:     "invalid yaml",
			file:     "bad.yaml",
			content:  "name: [unterminated",
			problems: 1,
			want:     "invalid YAML",
		},
		{
			name:     "every problem reported",
			file:     "many.json",
			content:  `{"name": "", "players": 9, "mode": "chaos", "scoring": "most", "pop_bonus": -1}`,
			problems: 5,
			want:     "players must be between 2 and 6",
		},
		{
			name:     "bad custom pattern",
			file:     "custom.json",
			content:  `{"name": "c", "tile_set": "custom", "custom_patterns": ["100000", "12"]}`,
			problems: 1,
			want:     "custom_patterns[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := File(writeFile(t, t.TempDir(), tt.file, tt.content))

			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if len(result.Problems) != tt.problems {
				t.Errorf("Expected %d problems, got %d: %v", tt.problems, len(result.Problems), result.Problems)
			}
			if err := result.Err(); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestFile_Missing(t *testing.T) {
	result := File(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Expected missing file to be invalid")
	}
}

func TestRuleset_Warnings(t *testing.T) {
	var result Result
	result.Valid = true
	Ruleset(&result, engine.Ruleset{
		Name:           "lopsided",
		TileSet:        engine.TileSetCustom,
		CustomPatterns: []string{"000000", "110000", "011000", "000011"},
	})

	if !result.Valid {
		t.Fatalf("Expected valid ruleset, got %v", result.Problems)
	}
	warnings := strings.Join(result.Warnings, "\n")
	if !strings.Contains(warnings, "000000 has no ticks") {
		t.Errorf("Expected blank tile warning, got:\n%s", warnings)
	}
	if !strings.Contains(warnings, "3 tiles are rotations of") {
		t.Errorf("Expected rotation warning, got:\n%s", warnings)
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"name": "a"}`)
	writeFile(t, dir, "b.yml", `name: b
players: 1`)
	writeFile(t, dir, "notes.txt", "not a ruleset")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}

	results, err := Dir(dir)
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].File != "a.json" || !results[0].Valid {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].File != "b.yml" || results[1].Valid {
		t.Errorf("unexpected second result %+v", results[1])
	}

	if _, err := Dir(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for a missing directory")
	}
}

func TestDir_ProjectConfigs(t *testing.T) {
	if _, err := os.Stat("../configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	results, err := Dir("../configs")
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	for _, r := range results {
		if !r.Valid {
			t.Errorf("%s is invalid: %v", r.File, r.Problems)
		}
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		valid   bool
		want    []string
	}{
		{
			name:    "all valid",
			results: []Result{{File: "a.json", Valid: true, Info: []string{"✓ Name: a"}}},
			valid:   true,
			want:    []string{"✅ VALID", "✓ Name: a", "All rulesets are valid"},
		},
		{
			name: "one invalid",
			results: []Result{
				{File: "a.json", Valid: true},
				{File: "b.json", Problems: []error{os.ErrNotExist}, Warnings: []string{"careful"}},
			},
			valid: false,
			want:  []string{"❌ INVALID", "❌ file does not exist", "⚠️  careful", "Some rulesets have errors"},
		},
		{
			name:  "empty",
			valid: true,
			want:  []string{"No ruleset files found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := Report(&buf, tt.results); got != tt.valid {
				t.Errorf("Report() = %v, want %v", got, tt.valid)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected %q in report, got:\n%s", want, buf.String())
				}
			}
		})
	}
}
