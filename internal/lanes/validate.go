package lanes

import "go-hex-lanes/pkg/hexmap"

// Report lists every invariant violation found on a map.
type Report struct {
	// Incomplete holds the indices of lanes whose last tile is not a hub tile.
	Incomplete []int
	// Clumped holds Pathway tiles without a buildable neighbor, in grid order.
	Clumped []hexmap.Hex
	// SpacingViolations holds pairs of lanes whose starts are too close.
	// Reported only; it does not affect Valid.
	SpacingViolations [][2]int
}

// Valid reports whether lane completeness and defender accessibility hold.
func (r Report) Valid() bool {
	return len(r.Incomplete) == 0 && len(r.Clumped) == 0
}

// Validate checks a classified grid against its lanes.
func Validate(grid *hexmap.Grid, lanes []Lane, minStartDistance int) Report {
	var r Report
	for i, lane := range lanes {
		if len(lane) == 0 || !grid.IsHub(lane.End()) {
			r.Incomplete = append(r.Incomplete, i)
		}
	}
	for _, h := range grid.Coords() {
		if k, _ := grid.KindAt(h); k != hexmap.Pathway {
			continue
		}
		if !grid.HasBuildableNeighbor(h) {
			r.Clumped = append(r.Clumped, h)
		}
	}
	for i := 0; i < len(lanes); i++ {
		for j := i + 1; j < len(lanes); j++ {
			if len(lanes[i]) == 0 || len(lanes[j]) == 0 {
				continue
			}
			if lanes[i].Start().Distance(lanes[j].Start()) < minStartDistance {
				r.SpacingViolations = append(r.SpacingViolations, [2]int{i, j})
			}
		}
	}
	return r
}

// Validate checks the generator's current map.
func (g *Generator) Validate() Report {
	return Validate(g.grid, g.lanes, g.cfg.MinDistanceBetweenStarts)
}
