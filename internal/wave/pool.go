package wave

import (
	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/defs"
	"go-hex-lanes/internal/utils"
)

// Focus is the flavour of a wave's enemy pool.
type Focus int

const (
	FocusMixed Focus = iota
	FocusSwarm
	FocusElite
)

func (f Focus) String() string {
	switch f {
	case FocusSwarm:
		return "swarm"
	case FocusElite:
		return "elite"
	}
	return "mixed"
}

// introduced returns how many of the cheapest roster entries are unlocked at
// a wave: one more every interval waves, all of them when interval <= 0.
func introduced(wave, interval, total int) int {
	if interval <= 0 {
		return total
	}
	n := 1 + (wave-1)/interval
	if n > total {
		n = total
	}
	if n < 0 {
		n = 0
	}
	return n
}

// eligible returns the unlocked roster entries whose MinWave has been reached,
// keeping cost order.
func eligible(roster defs.Roster, s config.WaveSettings, wave int) []defs.EnemyDefinition {
	var out []defs.EnemyDefinition
	for _, d := range roster[:introduced(wave, s.NewEnemyIntroductionInterval, len(roster))] {
		if d.EligibleAt(wave) {
			out = append(out, d)
		}
	}
	return out
}

// third returns the cheapest or the most expensive third of a cost-sorted
// slice, never less than one entry.
func third(sorted []defs.EnemyDefinition, cheapest bool) []defs.EnemyDefinition {
	n := (len(sorted) + 2) / 3
	if n == 0 {
		return nil
	}
	if cheapest {
		return sorted[:n]
	}
	return sorted[len(sorted)-n:]
}

// buildPool picks the enemy types for a wave: unlock and MinWave filter, then
// a focus roll, then up to MaxEnemyTypesPerWave distinct types sampled by
// weight. The pool keeps cost order.
func buildPool(rng *utils.PRNGService, roster defs.Roster, s config.WaveSettings, wave int) ([]defs.EnemyDefinition, Focus) {
	candidates := eligible(roster, s, wave)
	if len(candidates) == 0 {
		return nil, FocusMixed
	}

	focus := FocusMixed
	roll := rng.Float64()
	switch {
	case roll < s.SwarmFocusChance:
		focus = FocusSwarm
		candidates = third(candidates, true)
	case roll < s.SwarmFocusChance+s.EliteFocusChance:
		focus = FocusElite
		candidates = third(candidates, false)
	}

	limit := s.MaxEnemyTypesPerWave
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}
	picked := make([]bool, len(candidates))
	remaining := make([]int, 0, len(candidates))
	for i := range candidates {
		remaining = append(remaining, i)
	}
	for n := 0; n < limit; n++ {
		weights := make([]int, len(remaining))
		for i, idx := range remaining {
			weights[i] = candidates[idx].SamplingWeight()
		}
		k := rng.ChooseWeighted(weights)
		picked[remaining[k]] = true
		remaining = append(remaining[:k], remaining[k+1:]...)
	}

	pool := make([]defs.EnemyDefinition, 0, limit)
	for i, d := range candidates {
		if picked[i] {
			pool = append(pool, d)
		}
	}
	return pool, focus
}
