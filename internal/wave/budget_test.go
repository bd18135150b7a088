package wave

import (
	"math"
	"testing"

	"go-hex-lanes/internal/config"
)

func TestThreatBudgetValues(t *testing.T) {
	s := config.DefaultWaves()
	s.BaseThreat = 100
	s.ThreatExponent = 1.15

	if got := ThreatBudget(s, 1, 1); math.Abs(got-100) > 1e-9 {
		t.Errorf("wave 1 budget = %v, want 100", got)
	}
	want := 100 * math.Pow(5, 1.15)
	if got := ThreatBudget(s, 5, 1); math.Abs(got-want) > 1e-9 {
		t.Errorf("wave 5 budget = %v, want %v", got, want)
	}
	if got := ThreatBudget(s, 5, 1); got < 600 || got > 650 {
		t.Errorf("wave 5 budget = %v, out of expected range", got)
	}
	if got := ThreatBudget(s, 0, 1); got != 0 {
		t.Errorf("wave 0 budget = %v, want 0", got)
	}
}

func TestThreatBudgetMonotonic(t *testing.T) {
	s := config.DefaultWaves()
	for _, adj := range []float64{0.5, 1, 1.4} {
		prev := 0.0
		for n := 1; n <= 60; n++ {
			b := ThreatBudget(s, n, adj)
			if b < prev {
				t.Fatalf("adj %v: budget dropped at wave %d: %v < %v", adj, n, b, prev)
			}
			prev = b
		}
	}
}

func TestThreatBudgetClampsAdjustment(t *testing.T) {
	s := config.DefaultWaves()
	s.BaseThreat = 100
	s.ThreatExponent = 1
	s.PBAClamp = 1.5

	tests := []struct {
		adj  float64
		want float64
	}{
		{1, 100},
		{1.2, 120},
		{10, 150},
		{0.1, 100 / 1.5},
	}
	for _, tt := range tests {
		if got := ThreatBudget(s, 1, tt.adj); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("adj %v: got %v, want %v", tt.adj, got, tt.want)
		}
	}
}
