package defs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRosterSorted(t *testing.T) {
	r := DefaultRoster()
	if len(r) != 6 {
		t.Fatalf("expected 6 enemies, got %d", len(r))
	}
	for i := 1; i < len(r); i++ {
		if r[i-1].Cost > r[i].Cost {
			t.Errorf("roster not sorted by cost at %d: %d > %d", i, r[i-1].Cost, r[i].Cost)
		}
	}
	if r.Cheapest() != 10 {
		t.Errorf("cheapest = %d, want 10", r.Cheapest())
	}
	if d, ok := r.ByID("ENEMY_BRUTE"); !ok || d.MinWave != 4 {
		t.Errorf("ByID(ENEMY_BRUTE) = %+v, %v", d, ok)
	}
}

func TestLoadRosterJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	data := `[{"id":"B","cost":20},{"id":"A","cost":10,"weight":4}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster() failed: %v", err)
	}
	if r[0].ID != "A" || r[1].ID != "B" {
		t.Errorf("unexpected order: %+v", r)
	}
	if r[0].SamplingWeight() != 4 || r[1].SamplingWeight() != 1 {
		t.Errorf("weights: %d %d", r[0].SamplingWeight(), r[1].SamplingWeight())
	}
}

func TestParseRosterRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty":     `[]`,
		"no id":     `[{"cost": 5}]`,
		"duplicate": `[{"id":"A","cost":5},{"id":"A","cost":6}]`,
		"zero cost": `[{"id":"A","cost":0}]`,
		"garbage":   `{{{`,
	}
	for name, doc := range cases {
		if _, err := ParseRoster([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	if _, err := ParseRoster([]byte(`[]`)); !errors.Is(err, ErrEmptyRoster) {
		t.Errorf("expected ErrEmptyRoster, got %v", err)
	}
}

func TestNewRosterStableTies(t *testing.T) {
	r := NewRoster([]EnemyDefinition{{ID: "b", Cost: 5}, {ID: "a", Cost: 5}, {ID: "c", Cost: 1}})
	if r[0].ID != "c" || r[1].ID != "a" || r[2].ID != "b" {
		t.Errorf("unexpected order: %+v", r)
	}
}

func TestEligibleAt(t *testing.T) {
	d := EnemyDefinition{MinWave: 3}
	if d.EligibleAt(2) || !d.EligibleAt(3) {
		t.Error("MinWave eligibility wrong")
	}
}
