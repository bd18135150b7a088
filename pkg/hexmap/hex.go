// pkg/hexmap/hex.go
package hexmap

import (
	"math"

	"go-hex-lanes/pkg/utils"
)

// Hex представляет гекс в осевых координатах (Q, R)
type Hex struct {
	Q, R int
}

// Origin is the hub center.
var Origin = Hex{Q: 0, R: 0}

// NeighborDirections defines the 6 axial directions in ring-walk order.
// Ring walks start at Direction(4) scaled by the ring index and turn through
// this slice in order, so the order is load-bearing.
var NeighborDirections = [6]Hex{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// Direction returns the unit vector for one of the six neighbor directions.
func Direction(i int) Hex {
	return NeighborDirections[((i%6)+6)%6]
}

// ToPixel конвертирует гекс в пиксельные координаты (pointy top ориентация)
func (h Hex) ToPixel(hexSize float64) (x, y float64) {
	x = hexSize * (Sqrt3*float64(h.Q) + Sqrt3/2*float64(h.R))
	y = hexSize * (3.0 / 2.0 * float64(h.R))
	return
}

// PixelToHex конвертирует пиксельные координаты (относительно центра) в гекс
func PixelToHex(x, y, hexSize float64) Hex {
	q := (Sqrt3/3*x - 1.0/3*y) / hexSize
	r := (2.0 / 3 * y) / hexSize
	return axialRound(q, r)
}

// Angle returns the screen-space angle of h seen from the origin, in degrees
// within [0, 360).
func (h Hex) Angle() float64 {
	x, y := h.ToPixel(1)
	deg := math.Atan2(y, x) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// UnitVector returns the normalized pixel-space vector from h to other.
// Identical hexes yield the zero vector.
func (h Hex) UnitVector(other Hex) (x, y float64) {
	ax, ay := h.ToPixel(1)
	bx, by := other.ToPixel(1)
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return dx / l, dy / l
}

// AllPossibleNeighbors возвращает всех возможных соседей гекса
func (h Hex) AllPossibleNeighbors() []Hex {
	out := make([]Hex, 0, 6)
	for _, d := range NeighborDirections {
		out = append(out, h.Add(d))
	}
	return out
}

// IsAdjacent reports whether other is one step away from h.
func (h Hex) IsAdjacent(other Hex) bool {
	return h.Distance(other) == 1
}

// Add возвращает сумму двух гексов
func (h Hex) Add(other Hex) Hex {
	return Hex{
		Q: h.Q + other.Q,
		R: h.R + other.R,
	}
}

// Scale multiplies a hex vector by a scalar.
func (h Hex) Scale(factor int) Hex {
	return Hex{h.Q * factor, h.R * factor}
}

// Distance вычисляет расстояние между гексами
func (h Hex) Distance(to Hex) int {
	dq := h.Q - to.Q
	dr := h.R - to.R
	return (utils.Abs(dq) + utils.Abs(dr) + utils.Abs(dq+dr)) / 2
}

// Distance is the package-level form of Hex.Distance.
func Distance(a, b Hex) int {
	return a.Distance(b)
}

// Ring возвращает гексы кольца k вокруг center в порядке обхода
func Ring(center Hex, k int) []Hex {
	if k <= 0 {
		return []Hex{center}
	}
	results := make([]Hex, 0, 6*k)
	hex := center.Add(Direction(4).Scale(k))
	for i := 0; i < 6; i++ {
		for j := 0; j < k; j++ {
			results = append(results, hex)
			hex = hex.Add(Direction(i))
		}
	}
	return results
}
