// pkg/hexmap/grid.go
package hexmap

// Grid owns the coordinate space and per-tile bookkeeping.
// Tiles is keyed by coordinate; order keeps the ring-walk insertion order so
// every pass over the grid is deterministic.
type Grid struct {
	Tiles   map[Hex]*Tile
	Radius  int
	HubSize int
	order   []Hex
}

// NewGrid creates a populated disk of the given radius. hubSize is 1 or 7;
// anything of 7 or more yields the 7-tile hub.
func NewGrid(radius, hubSize int) *Grid {
	g := &Grid{HubSize: normalizeHubSize(hubSize)}
	g.Populate(radius)
	return g
}

func normalizeHubSize(n int) int {
	if n >= 7 {
		return 7
	}
	return 1
}

// Populate rebuilds the grid as a full disk, walking rings 0..radius.
func (g *Grid) Populate(radius int) {
	if radius < 0 {
		radius = 0
	}
	g.Radius = radius
	g.Tiles = make(map[Hex]*Tile, 1+3*radius*(radius+1))
	g.order = g.order[:0]
	for k := 0; k <= radius; k++ {
		for _, h := range Ring(Origin, k) {
			kind := Environment
			if g.inHubFootprint(h) {
				kind = CenterHub
			}
			g.put(newTile(h, kind))
		}
	}
}

// AddRing appends Environment tiles on ring ringIndex where none exist yet.
// Radius is not changed. Returns the number of tiles added.
func (g *Grid) AddRing(ringIndex int) int {
	added := 0
	for _, h := range Ring(Origin, ringIndex) {
		if g.Contains(h) {
			continue
		}
		g.put(newTile(h, Environment))
		added++
	}
	return added
}

// Clear resets the grid to a freshly populated disk of the same radius.
func (g *Grid) Clear() {
	g.Populate(g.Radius)
}

func (g *Grid) put(t *Tile) {
	g.Tiles[t.Coord] = t
	g.order = append(g.order, t.Coord)
}

// AddTile inserts a tile outside the populated disk, for example an edge
// spawn marker. Existing tiles are returned unchanged.
func (g *Grid) AddTile(h Hex, kind TileKind, laneID int) *Tile {
	if t, ok := g.Tiles[h]; ok {
		return t
	}
	t := newTile(h, kind)
	t.LaneID = laneID
	g.put(t)
	return t
}

// RemoveTile deletes h from the grid.
func (g *Grid) RemoveTile(h Hex) {
	if _, ok := g.Tiles[h]; !ok {
		return
	}
	delete(g.Tiles, h)
	for i, c := range g.order {
		if c == h {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// ResetClassification rebuilds tile kinds from geometry alone: the hub
// footprint becomes CenterHub again, every other tile unclaimed Environment,
// and edge spawn markers are dropped.
func (g *Grid) ResetClassification() {
	var spawns []Hex
	for _, h := range g.order {
		t := g.Tiles[h]
		if t.Kind == EdgeSpawn {
			spawns = append(spawns, h)
			continue
		}
		t.Kind = Environment
		if g.inHubFootprint(h) {
			t.Kind = CenterHub
		}
		t.LaneID = NoLane
		t.IsJunction = false
		t.Height = 0
	}
	for _, h := range spawns {
		g.RemoveTile(h)
	}
}

// Contains reports whether h is part of the grid.
func (g *Grid) Contains(h Hex) bool {
	_, exists := g.Tiles[h]
	return exists
}

// Tile returns the tile at h.
func (g *Grid) Tile(h Hex) (*Tile, bool) {
	t, ok := g.Tiles[h]
	return t, ok
}

// KindAt returns the kind of the tile at h, if present.
func (g *Grid) KindAt(h Hex) (TileKind, bool) {
	t, ok := g.Tiles[h]
	if !ok {
		return Environment, false
	}
	return t.Kind, true
}

// Coords returns every coordinate in deterministic insertion order.
func (g *Grid) Coords() []Hex {
	out := make([]Hex, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of tiles.
func (g *Grid) Len() int {
	return len(g.order)
}

// Neighbors возвращает существующих соседей гекса
func (g *Grid) Neighbors(h Hex) []Hex {
	valid := make([]Hex, 0, 6)
	for _, d := range NeighborDirections {
		n := h.Add(d)
		if _, exists := g.Tiles[n]; exists {
			valid = append(valid, n)
		}
	}
	return valid
}

// Distance is the hex distance between a and b. Presence is not required.
func (g *Grid) Distance(a, b Hex) int {
	return a.Distance(b)
}

func (g *Grid) inHubFootprint(h Hex) bool {
	d := h.Distance(Origin)
	if g.HubSize == 7 {
		return d <= 1
	}
	return d == 0
}

// IsHub reports whether h is a hub tile.
func (g *Grid) IsHub(h Hex) bool {
	t, ok := g.Tiles[h]
	return ok && t.Kind == CenterHub
}

// HubTiles returns the hub footprint in ring order.
func (g *Grid) HubTiles() []Hex {
	var hub []Hex
	for _, h := range g.order {
		if g.Tiles[h].Kind == CenterHub {
			hub = append(hub, h)
		}
	}
	return hub
}

// DistanceToHub returns the hex distance from h to the nearest hub tile of
// the configured footprint.
func (g *Grid) DistanceToHub(h Hex) int {
	d := h.Distance(Origin)
	if g.HubSize == 7 && d > 0 {
		return d - 1
	}
	return d
}

// OuterRing returns the present tiles on the outermost populated ring.
func (g *Grid) OuterRing() []Hex {
	var out []Hex
	for _, h := range Ring(Origin, g.Radius) {
		if g.Contains(h) {
			out = append(out, h)
		}
	}
	return out
}

// HasBuildableNeighbor reports whether any neighbor of h can host a defender.
func (g *Grid) HasBuildableNeighbor(h Hex) bool {
	for _, n := range g.Neighbors(h) {
		if g.Tiles[n].Kind.Buildable() {
			return true
		}
	}
	return false
}

// CountKind returns how many tiles have the given kind.
func (g *Grid) CountKind(kind TileKind) int {
	n := 0
	for _, h := range g.order {
		if g.Tiles[h].Kind == kind {
			n++
		}
	}
	return n
}

// GetHexesInRange returns present hexes within radius of center.
func (g *Grid) GetHexesInRange(center Hex, radius int) []Hex {
	var result []Hex
	for k := 0; k <= radius; k++ {
		for _, h := range Ring(center, k) {
			if g.Contains(h) {
				result = append(result, h)
			}
		}
	}
	return result
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Tiles:   make(map[Hex]*Tile, len(g.Tiles)),
		Radius:  g.Radius,
		HubSize: g.HubSize,
		order:   make([]Hex, len(g.order)),
	}
	copy(c.order, g.order)
	for h, t := range g.Tiles {
		cp := *t
		c.Tiles[h] = &cp
	}
	return c
}
