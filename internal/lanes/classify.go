package lanes

import "go-hex-lanes/pkg/hexmap"

// classify rebuilds every tile kind from the current lanes: lane tiles become
// Pathway, Environment tiles beside a lane become DefenderSpot and each lane
// gets one EdgeSpawn marker outside the disk.
func (g *Generator) classify() {
	g.grid.ResetClassification()
	g.spawns = g.spawns[:0]
	g.applyLanes()
	g.markDefenderSpots()
	g.placeEdgeSpawns()
}

// applyLanes marks lane tiles as Pathway. The first lane to reach a tile owns
// it; any later lane turns it into a junction. Hub tiles are left alone.
func (g *Generator) applyLanes() {
	for id, lane := range g.lanes {
		for _, h := range lane {
			t, ok := g.grid.Tile(h)
			if !ok || t.Kind == hexmap.CenterHub {
				continue
			}
			if t.Kind == hexmap.Pathway {
				if t.LaneID != id {
					t.IsJunction = true
				}
				continue
			}
			t.Kind = hexmap.Pathway
			t.LaneID = id
		}
	}
}

func (g *Generator) markDefenderSpots() {
	for _, h := range g.grid.Coords() {
		t, _ := g.grid.Tile(h)
		if t.Kind != hexmap.Environment {
			continue
		}
		for _, n := range g.grid.Neighbors(h) {
			if k, _ := g.grid.KindAt(n); k == hexmap.Pathway {
				t.Kind = hexmap.DefenderSpot
				break
			}
		}
	}
}

// placeEdgeSpawns puts a spawn marker next to each lane's first tile, on the
// free neighbor that points most directly away from the hub.
func (g *Generator) placeEdgeSpawns() {
	for id, lane := range g.lanes {
		if len(lane) == 0 {
			continue
		}
		first := lane.Start()
		ox, oy := hexmap.Origin.UnitVector(first)

		var best hexmap.Hex
		bestDot, found := -2.0, false
		for _, c := range first.AllPossibleNeighbors() {
			if g.grid.Contains(c) || c.Distance(hexmap.Origin) <= g.grid.Radius {
				continue
			}
			cx, cy := first.UnitVector(c)
			if dot := cx*ox + cy*oy; dot > bestDot {
				best, bestDot, found = c, dot, true
			}
		}
		if !found {
			g.logger.Debug("no room for edge spawn", "lane", id, "start", first)
			continue
		}
		g.grid.AddTile(best, hexmap.EdgeSpawn, id)
		g.spawns = append(g.spawns, EdgeSpawnPoint{Lane: id, Coord: best})
	}
}
