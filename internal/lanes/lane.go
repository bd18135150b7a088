package lanes

import "go-hex-lanes/pkg/hexmap"

// Lane is an ordered path from an edge start tile to a hub tile, inclusive.
type Lane []hexmap.Hex

// Start returns the lane's first tile.
func (l Lane) Start() hexmap.Hex {
	if len(l) == 0 {
		return hexmap.Origin
	}
	return l[0]
}

// End returns the lane's last tile.
func (l Lane) End() hexmap.Hex {
	if len(l) == 0 {
		return hexmap.Origin
	}
	return l[len(l)-1]
}

// Contains reports whether h is on the lane.
func (l Lane) Contains(h hexmap.Hex) bool {
	for _, c := range l {
		if c == h {
			return true
		}
	}
	return false
}

// Contiguous reports whether every consecutive pair is adjacent.
func (l Lane) Contiguous() bool {
	for i := 1; i < len(l); i++ {
		if !l[i-1].IsAdjacent(l[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no storage with l.
func (l Lane) Clone() Lane {
	out := make(Lane, len(l))
	copy(out, l)
	return out
}

// EdgeSpawnPoint is the spawn marker placed just outside the grid for a lane.
type EdgeSpawnPoint struct {
	Lane  int
	Coord hexmap.Hex
}
