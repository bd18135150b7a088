package wave

import (
	"go-hex-lanes/internal/defs"
	"go-hex-lanes/internal/utils"
)

// spawnItem is one planned spawn. delay is the wait after the previous spawn
// in the same lane.
type spawnItem struct {
	enemy defs.EnemyDefinition
	delay float64
}

// laneQueue holds the pending spawns of one lane during a wave.
type laneQueue struct {
	lane  int
	items []spawnItem
	next  int
	wait  float64
	spent int
}

func (q *laneQueue) done() bool { return q.next >= len(q.items) }

// spendLane keeps picking uniformly among pool members that still fit in the
// budget until none does. Free enemies are never picked. The returned picks never cost more than budget.
func spendLane(rng *utils.PRNGService, pool []defs.EnemyDefinition, budget float64) ([]defs.EnemyDefinition, int) {
	var (
		picks []defs.EnemyDefinition
		spent int
	)
	remaining := budget
	for {
		var affordable []defs.EnemyDefinition
		for _, d := range pool {
			if d.Cost > 0 && float64(d.Cost) <= remaining {
				affordable = append(affordable, d)
			}
		}
		if len(affordable) == 0 {
			return picks, spent
		}
		d := affordable[rng.Intn(len(affordable))]
		picks = append(picks, d)
		spent += d.Cost
		remaining -= float64(d.Cost)
	}
}

// planLane turns a lane's picks into a queue; the first spawn is immediate,
// each later one waits a stagger drawn from [lo, hi].
func planLane(rng *utils.PRNGService, lane int, picks []defs.EnemyDefinition, spent int, lo, hi float64) *laneQueue {
	q := &laneQueue{lane: lane, spent: spent, items: make([]spawnItem, len(picks))}
	for i, d := range picks {
		item := spawnItem{enemy: d}
		if i > 0 {
			item.delay = rng.Range(lo, hi)
		}
		q.items[i] = item
	}
	return q
}
