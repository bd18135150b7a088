package lanes

import (
	"math"

	"go-hex-lanes/pkg/hexmap"
)

const (
	// reusePenalty is added to stepping onto an existing Pathway tile while
	// completing a lane.
	reusePenalty = 0.5
	// unclumpThreshold is the share of clumped tiles that must be fixed for a
	// repair to count as successful.
	unclumpThreshold = 0.8
)

// RepairOutcome summarises one repair pass.
type RepairOutcome struct {
	Mutations int
	Completed int // lanes extended to the hub
	Unclumped int // pathway tiles turned back into Environment
	OK        bool
}

// Repair fixes the violations in report, cheapest first: incomplete lanes are
// extended to the hub with A*, then clumped tiles get a neighboring pathway
// tile removed where no lane would be cut. A valid report is a no-op.
func (g *Generator) Repair(report Report) RepairOutcome {
	if report.Valid() {
		return RepairOutcome{OK: true}
	}

	var out RepairOutcome
	for _, i := range report.Incomplete {
		if g.completeLane(i) {
			out.Completed++
			out.Mutations++
		} else {
			g.logger.Debug("lane cannot reach hub", "lane", i)
		}
	}

	clumped := report.Clumped
	if out.Completed > 0 {
		g.classify()
		clumped = g.Validate().Clumped
	}

	fixed := 0
	for _, h := range clumped {
		if k, _ := g.grid.KindAt(h); k != hexmap.Pathway || g.grid.HasBuildableNeighbor(h) {
			fixed++
			continue
		}
		if g.unclump(h) {
			fixed++
			out.Unclumped++
			out.Mutations++
		}
	}
	out.OK = len(clumped) == 0 || float64(fixed) >= unclumpThreshold*float64(len(clumped))

	g.classify()
	if !out.OK {
		g.logger.Warn("repair could not fix clumped lanes", "fixed", fixed, "clumped", len(clumped))
	}
	return out
}

// completeLane extends lane i from its last tile to the nearest hub tile.
func (g *Generator) completeLane(i int) bool {
	lane := g.lanes[i]
	if len(lane) == 0 {
		return false
	}
	cost := func(_, to hexmap.Hex) float64 {
		switch k, _ := g.grid.KindAt(to); k {
		case hexmap.EdgeSpawn:
			return math.Inf(1)
		case hexmap.Pathway:
			return 1 + reusePenalty
		}
		return 1
	}
	heuristic := func(h hexmap.Hex) float64 {
		return float64(g.grid.DistanceToHub(h))
	}
	path := g.grid.FindPath(lane.End(), g.grid.IsHub, cost, heuristic)
	if len(path) < 2 {
		return false
	}
	g.lanes[i] = append(lane, path[1:]...)
	return true
}

// unclump turns the first removable Pathway neighbor of h into Environment.
func (g *Generator) unclump(h hexmap.Hex) bool {
	for _, n := range g.grid.Neighbors(h) {
		t, _ := g.grid.Tile(n)
		if t.Kind != hexmap.Pathway || !g.removable(n) {
			continue
		}
		for i, lane := range g.lanes {
			g.lanes[i] = without(lane, n)
		}
		t.Kind = hexmap.Environment
		t.LaneID = hexmap.NoLane
		t.IsJunction = false
		return true
	}
	return false
}

// removable reports whether every lane through p stays connected without it:
// p is never a lane's first or last tile and its lane neighbors are adjacent.
func (g *Generator) removable(p hexmap.Hex) bool {
	found := false
	for _, lane := range g.lanes {
		for k, c := range lane {
			if c != p {
				continue
			}
			found = true
			if k == 0 || k == len(lane)-1 {
				return false
			}
			if !lane[k-1].IsAdjacent(lane[k+1]) {
				return false
			}
		}
	}
	return found
}

func without(l Lane, h hexmap.Hex) Lane {
	out := l[:0]
	for _, c := range l {
		if c != h {
			out = append(out, c)
		}
	}
	return out
}
