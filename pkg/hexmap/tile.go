// pkg/hexmap/tile.go
package hexmap

// TileKind classifies a tile for gameplay.
type TileKind int

const (
	Environment TileKind = iota
	CenterHub
	Pathway
	DefenderSpot
	EdgeSpawn
)

// NoLane marks a tile that no lane has claimed.
const NoLane = -1

func (k TileKind) String() string {
	switch k {
	case Environment:
		return "environment"
	case CenterHub:
		return "hub"
	case Pathway:
		return "pathway"
	case DefenderSpot:
		return "defender"
	case EdgeSpawn:
		return "spawn"
	}
	return "unknown"
}

// Buildable reports whether defenders may be placed on a tile of this kind.
// DefenderSpot is an Environment tile tagged as bordering a lane, so both count.
func (k TileKind) Buildable() bool {
	return k == Environment || k == DefenderSpot
}

// Tile — одна ячейка карты
type Tile struct {
	Coord      Hex
	Kind       TileKind
	LaneID     int
	IsJunction bool
	Height     float64 // cosmetic only
}

func newTile(h Hex, kind TileKind) *Tile {
	return &Tile{Coord: h, Kind: kind, LaneID: NoLane}
}
