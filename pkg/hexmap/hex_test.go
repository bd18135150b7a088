package hexmap

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b Hex
		want int
	}{
		{Hex{0, 0}, Hex{0, 0}, 0},
		{Hex{0, 0}, Hex{1, 0}, 1},
		{Hex{0, 0}, Hex{1, -1}, 1},
		{Hex{0, 0}, Hex{2, -1}, 2},
		{Hex{-3, 3}, Hex{3, -3}, 6},
		{Hex{1, 2}, Hex{-2, 1}, 4},
	}
	for _, c := range cases {
		if got := c.a.Distance(c.b); got != c.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := Distance(c.b, c.a); got != c.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", c.b, c.a, got, c.want)
		}
	}
}

func TestAllPossibleNeighborsAreAdjacent(t *testing.T) {
	h := Hex{2, -1}
	ns := h.AllPossibleNeighbors()
	if len(ns) != 6 {
		t.Fatalf("expected 6 neighbors, got %d", len(ns))
	}
	seen := map[Hex]bool{}
	for _, n := range ns {
		if !h.IsAdjacent(n) {
			t.Errorf("%v is not adjacent to %v", n, h)
		}
		if seen[n] {
			t.Errorf("duplicate neighbor %v", n)
		}
		seen[n] = true
	}
}

func TestRingSizesAndDistances(t *testing.T) {
	for k := 0; k <= 5; k++ {
		ring := Ring(Origin, k)
		want := 6 * k
		if k == 0 {
			want = 1
		}
		if len(ring) != want {
			t.Fatalf("ring %d: expected %d hexes, got %d", k, want, len(ring))
		}
		for i, h := range ring {
			if h.Distance(Origin) != k {
				t.Errorf("ring %d: %v at distance %d", k, h, h.Distance(Origin))
			}
			if k > 0 {
				next := ring[(i+1)%len(ring)]
				if !h.IsAdjacent(next) {
					t.Errorf("ring %d: consecutive %v and %v are not adjacent", k, h, next)
				}
			}
		}
	}
}

func TestPixelRoundTrip(t *testing.T) {
	for _, h := range []Hex{{0, 0}, {3, -1}, {-2, 4}, {5, -5}} {
		x, y := h.ToPixel(19)
		if got := PixelToHex(x, y, 19); got != h {
			t.Errorf("PixelToHex(ToPixel(%v)) = %v", h, got)
		}
	}
}

func TestAngle(t *testing.T) {
	if a := (Hex{1, 0}).Angle(); math.Abs(a) > 1e-9 {
		t.Errorf("east hex angle = %f, want 0", a)
	}
	if a := (Hex{-1, 0}).Angle(); math.Abs(a-180) > 1e-9 {
		t.Errorf("west hex angle = %f, want 180", a)
	}
	for _, h := range Ring(Origin, 3) {
		a := h.Angle()
		if a < 0 || a >= 360 {
			t.Errorf("angle of %v out of range: %f", h, a)
		}
	}
}

func TestUnitVector(t *testing.T) {
	x, y := Hex{0, 0}.UnitVector(Hex{2, -1})
	if l := math.Hypot(x, y); math.Abs(l-1) > 1e-9 {
		t.Errorf("unit vector length = %f", l)
	}
	x, y = Hex{1, 1}.UnitVector(Hex{1, 1})
	if x != 0 || y != 0 {
		t.Errorf("expected zero vector, got (%f, %f)", x, y)
	}
}
