// internal/defs/enemies.go
package defs

import (
	"sort"
)

// EnemyDefinition holds the static data the wave director needs for one
// enemy type. Prefab is opaque to the core; the host maps it to whatever it
// instantiates.
type EnemyDefinition struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Cost    int    `yaml:"cost" json:"cost"`
	Weight  int    `yaml:"weight" json:"weight"`
	MinWave int    `yaml:"min_wave" json:"min_wave"`
	Prefab  string `yaml:"prefab" json:"prefab"`
}

// SamplingWeight returns the weight used when picking distinct types for a
// wave. Unset weights count as 1.
func (d EnemyDefinition) SamplingWeight() int {
	if d.Weight <= 0 {
		return 1
	}
	return d.Weight
}

// EligibleAt reports whether the enemy may appear in the given wave.
func (d EnemyDefinition) EligibleAt(wave int) bool {
	return d.MinWave <= wave
}

// Roster is a read-only list of enemy definitions sorted by cost ascending.
type Roster []EnemyDefinition

// NewRoster copies defs and sorts them by cost, then ID, so ties are stable.
func NewRoster(defs []EnemyDefinition) Roster {
	r := make(Roster, len(defs))
	copy(r, defs)
	sort.SliceStable(r, func(i, j int) bool {
		if r[i].Cost == r[j].Cost {
			return r[i].ID < r[j].ID
		}
		return r[i].Cost < r[j].Cost
	})
	return r
}

// Cheapest returns the lowest cost in the roster, or 0 when empty.
func (r Roster) Cheapest() int {
	if len(r) == 0 {
		return 0
	}
	return r[0].Cost
}

// ByID finds a definition by its identifier.
func (r Roster) ByID(id string) (EnemyDefinition, bool) {
	for _, d := range r {
		if d.ID == id {
			return d, true
		}
	}
	return EnemyDefinition{}, false
}
