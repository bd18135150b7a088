package lanes

import (
	"fmt"
	"math"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/pkg/hexmap"
)

type placedStart struct {
	hex      hexmap.Hex
	cfgIndex int
	settings config.LaneSettings
}

// selectStarts picks up to NumberOfLanes start tiles on the outer ring.
// Each lane aims at an evenly spaced (or configured) direction, nudged by
// DirectionSpreadWeight; candidates too close to an earlier start, in hexes
// or in angle, are rejected. Lanes that cannot be placed are skipped.
func (g *Generator) selectStarts() []placedStart {
	n := g.cfg.NumberOfLanes
	if n <= 0 {
		return nil
	}

	var ring []hexmap.Hex
	for _, h := range g.grid.OuterRing() {
		if !g.grid.IsHub(h) {
			ring = append(ring, h)
		}
	}

	step := 360.0 / float64(n)
	base := g.rng.Float64() * 360

	starts := make([]placedStart, 0, n)
	chosen := make([]hexmap.Hex, 0, n)
	for i := 0; i < n; i++ {
		lane := g.cfg.Lane(i)
		target := base + float64(i)*step
		if lane.Direction >= 0 {
			target = lane.Direction
		}
		target += (g.rng.Float64()*2 - 1) * g.cfg.DirectionSpreadWeight * step / 2

		best, ok := g.closestAllowed(ring, chosen, target)
		if !ok {
			g.warn(fmt.Errorf("%w: lane %d has no start tile", ErrConfigurationDegenerate, i),
				"skipping lane, no start satisfies spacing",
				"lane", i, "min_distance", g.cfg.MinDistanceBetweenStarts, "min_angle", g.cfg.MinAngleBetweenLanes)
			continue
		}
		chosen = append(chosen, best)
		starts = append(starts, placedStart{hex: best, cfgIndex: i, settings: lane})
	}
	return starts
}

func (g *Generator) closestAllowed(ring, chosen []hexmap.Hex, target float64) (hexmap.Hex, bool) {
	var best hexmap.Hex
	bestDiff := math.Inf(1)
	found := false
	for _, c := range ring {
		if !g.startAllowed(c, chosen) {
			continue
		}
		if d := angleDiff(c.Angle(), target); d < bestDiff {
			best, bestDiff, found = c, d, true
		}
	}
	return best, found
}

func (g *Generator) startAllowed(c hexmap.Hex, chosen []hexmap.Hex) bool {
	for _, s := range chosen {
		if s == c {
			return false
		}
		if c.Distance(s) < g.cfg.MinDistanceBetweenStarts {
			return false
		}
		if angleDiff(c.Angle(), s.Angle()) < g.cfg.MinAngleBetweenLanes {
			return false
		}
	}
	return true
}

// angleDiff returns the absolute difference of two angles in degrees, in [0, 180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
