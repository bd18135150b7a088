// pkg/hexmap/terrain.go
package hexmap

// Rand is the subset of a seeded generator the terrain pass needs.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// findFarthestHex находит кандидата, самого удалённого от уже выбранных центров.
func findFarthestHex(candidates []Hex, existing []Hex) Hex {
	var best Hex
	maxTotal := -1
	for _, c := range candidates {
		total := 0
		for _, e := range existing {
			total += c.Distance(e)
		}
		if total > maxTotal {
			maxTotal = total
			best = c
		}
	}
	return best
}

// RaiseTerrain assigns cosmetic heights. Peaks are placed on buildable tiles,
// the first at random and the rest as far as possible from the previous ones;
// height falls off linearly with distance to each peak. Lanes, hub and spawn
// markers stay flat. Heights never feed back into gameplay decisions.
func (g *Grid) RaiseTerrain(rng Rand, peaks int, amplitude float64) {
	if peaks <= 0 || amplitude <= 0 {
		return
	}
	var candidates []Hex
	for _, h := range g.order {
		if g.Tiles[h].Kind.Buildable() {
			candidates = append(candidates, h)
		}
	}
	if len(candidates) == 0 {
		return
	}

	centers := []Hex{candidates[rng.Intn(len(candidates))]}
	for len(centers) < peaks && len(centers) < len(candidates) {
		centers = append(centers, findFarthestHex(candidates, centers))
	}

	reach := float64(g.Radius)/2 + 1
	raised := make(map[Hex]float64)
	for _, c := range centers {
		for _, h := range g.GetHexesInRange(c, int(reach)) {
			if falloff := 1 - float64(h.Distance(c))/reach; falloff > 0 {
				raised[h] += amplitude * falloff
			}
		}
	}
	for _, h := range g.order {
		t := g.Tiles[h]
		if !t.Kind.Buildable() {
			t.Height = 0
			continue
		}
		// небольшой шум, чтобы склоны не были идеально ровными
		t.Height = raised[h] * (0.85 + rng.Float64()*0.3)
	}
}
