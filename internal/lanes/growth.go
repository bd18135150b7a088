package lanes

import (
	"fmt"
	"sort"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/pkg/hexmap"
)

// Score weights for a candidate step.
const (
	proximityWeight     = 0.5
	alignmentWeight     = 0.3
	accessibilityWeight = 0.2

	curvinessNoise = 0.3
	mergeBonus     = 0.25
)

type laneState struct {
	id       int
	cfgIndex int
	settings config.LaneSettings
	path     Lane
	onPath   map[hexmap.Hex]bool
	done     bool
	capped   bool
	steps    int

	mergeInto int // placed lane index, -1 when not merging
	merged    bool
}

func (ls *laneState) last() hexmap.Hex {
	return ls.path[len(ls.path)-1]
}

type candidate struct {
	hex      hexmap.Hex
	score    float64
	good     bool // does not move away from the hub
	occupied bool
	merge    bool
}

// growLanes grows every lane one tile per wave, in lane index order, until all
// lanes reach the hub or a wave makes no progress. The loop is capped at
// 2*radius waves; whatever is unfinished afterwards is force-completed.
func (g *Generator) growLanes(starts []placedStart) []Lane {
	// occupied maps a tile to the first lane that stepped on it.
	occupied := make(map[hexmap.Hex]int)
	states := make([]*laneState, len(starts))
	for i, s := range starts {
		ls := &laneState{
			id:        i,
			cfgIndex:  s.cfgIndex,
			settings:  s.settings,
			onPath:    make(map[hexmap.Hex]bool),
			mergeInto: -1,
		}
		ls.append(s.hex, occupied)
		states[i] = ls
	}
	g.rollMerges(states)

	maxWaves := 2 * g.grid.Radius
	for wave := 0; wave < maxWaves; wave++ {
		active, advanced := false, false
		for _, ls := range states {
			if ls.done || ls.capped {
				continue
			}
			active = true
			if g.step(ls, states, occupied) {
				advanced = true
			}
		}
		if !active {
			break
		}
		if !advanced {
			g.warn(fmt.Errorf("%w at wave %d", ErrGenerationStalled, wave),
				"lane growth stalled", "wave", wave)
			break
		}
	}

	lanes := make([]Lane, len(states))
	for i, ls := range states {
		if !ls.done {
			g.forcePathToCenter(ls, occupied)
		}
		lanes[i] = ls.path
	}
	return lanes
}

// rollMerges decides once per generation which lanes will try to merge.
// MergeWithLane names a configured lane index; a target that was never
// placed, or the lane itself, disables the merge.
func (g *Generator) rollMerges(states []*laneState) {
	for _, ls := range states {
		s := ls.settings
		if !s.AllowMerging || s.MergeWithLane < 0 || s.MergeWithLane == ls.cfgIndex {
			continue
		}
		target := -1
		for j, other := range states {
			if other.cfgIndex == s.MergeWithLane {
				target = j
				break
			}
		}
		if target < 0 {
			continue
		}
		if g.rng.Chance(s.MergeProbability * g.cfg.GlobalMergeProbability) {
			ls.mergeInto = target
		}
	}
}

func (ls *laneState) append(h hexmap.Hex, occupied map[hexmap.Hex]int) {
	ls.path = append(ls.path, h)
	ls.onPath[h] = true
	if _, taken := occupied[h]; !taken {
		occupied[h] = ls.id
	}
}

// step advances one lane by one tile. Returns false when the lane could not
// move; reaching the Length cap counts as progress since it ends the lane.
func (g *Generator) step(ls *laneState, states []*laneState, occupied map[hexmap.Hex]int) bool {
	cur := ls.last()
	if g.grid.IsHub(cur) {
		ls.done = true
		return false
	}
	if ls.settings.Length > 0 && ls.steps >= ls.settings.Length {
		ls.capped = true
		return true
	}

	neighbors := g.grid.Neighbors(cur)
	for _, n := range neighbors {
		if g.grid.IsHub(n) {
			ls.append(n, occupied)
			ls.steps++
			ls.done = true
			return true
		}
	}

	cands := g.scoreCandidates(ls, cur, neighbors, occupied)
	if len(cands) == 0 {
		return false
	}
	pick := g.choose(ls, cands)

	ls.append(pick.hex, occupied)
	ls.steps++
	if pick.merge {
		g.followMergeTarget(ls, states[ls.mergeInto], pick.hex, occupied)
	}
	if g.grid.IsHub(ls.last()) {
		ls.done = true
	}
	return true
}

func (g *Generator) scoreCandidates(ls *laneState, cur hexmap.Hex, neighbors []hexmap.Hex, occupied map[hexmap.Hex]int) []candidate {
	dCur := g.grid.DistanceToHub(cur)
	hx, hy := cur.UnitVector(hexmap.Origin)
	curviness := ls.settings.Curviness * g.cfg.GlobalCurviness
	merging := ls.mergeInto >= 0 && !ls.merged && dCur <= ls.settings.MergeAtDistance

	cands := make([]candidate, 0, len(neighbors))
	for _, n := range neighbors {
		if ls.onPath[n] {
			continue
		}
		improvement := dCur - g.grid.DistanceToHub(n)
		prox := float64(improvement+1) / 2

		cx, cy := cur.UnitVector(n)
		align := (cx*hx + cy*hy + 1) / 2

		access := 0.0
		if g.hasFreeEnvironment(n, cur, occupied) {
			access = 1
		}

		score := proximityWeight*prox + alignmentWeight*align + accessibilityWeight*access
		score += (g.rng.Float64()*2 - 1) * curviness * curvinessNoise

		c := candidate{hex: n, good: improvement >= 0}
		if owner, taken := occupied[n]; taken {
			c.occupied = true
			if merging && owner == ls.mergeInto {
				c.occupied = false
				c.merge = true
				score += mergeBonus
			}
		}
		c.score = score
		cands = append(cands, c)
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	return cands
}

// hasFreeEnvironment reports whether n borders a tile no lane has claimed,
// ignoring the tile the lane is stepping from.
func (g *Generator) hasFreeEnvironment(n, from hexmap.Hex, occupied map[hexmap.Hex]int) bool {
	for _, nn := range g.grid.Neighbors(n) {
		if nn == from || g.grid.IsHub(nn) {
			continue
		}
		if _, taken := occupied[nn]; !taken {
			return true
		}
	}
	return false
}

// choose takes the best unoccupied good candidate; overlapping another lane
// is the last resort. RandomnessFactor gives the chance to take the runner-up
// of the same tier instead.
func (g *Generator) choose(ls *laneState, cands []candidate) candidate {
	tiers := [][]candidate{
		filter(cands, func(c candidate) bool { return c.good && !c.occupied }),
		filter(cands, func(c candidate) bool { return c.good }),
		filter(cands, func(c candidate) bool { return !c.occupied }),
		cands,
	}
	for _, tier := range tiers {
		if len(tier) == 0 {
			continue
		}
		if len(tier) > 1 && g.rng.Chance(ls.settings.RandomnessFactor*g.cfg.GlobalRandomness) {
			return tier[1]
		}
		return tier[0]
	}
	return cands[0]
}

func filter(cands []candidate, keep func(candidate) bool) []candidate {
	var out []candidate
	for _, c := range cands {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// followMergeTarget copies the rest of the target lane after the join tile.
// It stops early rather than revisit its own path.
func (g *Generator) followMergeTarget(ls, target *laneState, join hexmap.Hex, occupied map[hexmap.Hex]int) {
	ls.merged = true
	idx := -1
	for i, h := range target.path {
		if h == join {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for _, h := range target.path[idx+1:] {
		if ls.onPath[h] {
			break
		}
		ls.append(h, occupied)
	}
	g.logger.Debug("lane merged", "lane", ls.id, "into", target.id, "at", join)
}

// forcePathToCenter walks an unfinished lane to the hub, always stepping to
// the neighbor closest to the origin. The disk is convex, so every step gets
// one tile closer and the walk terminates.
func (g *Generator) forcePathToCenter(ls *laneState, occupied map[hexmap.Hex]int) {
	guard := 4*g.grid.Radius + 4
	for !g.grid.IsHub(ls.last()) && guard > 0 {
		guard--
		cur := ls.last()
		best, bestDist := cur, cur.Distance(hexmap.Origin)
		for _, n := range g.grid.Neighbors(cur) {
			if d := n.Distance(hexmap.Origin); d < bestDist {
				best, bestDist = n, d
			}
		}
		if best == cur {
			break
		}
		ls.append(best, occupied)
	}
	ls.done = g.grid.IsHub(ls.last())
	g.logger.Debug("lane force-completed", "lane", ls.id, "length", len(ls.path), "reached_hub", ls.done)
}
