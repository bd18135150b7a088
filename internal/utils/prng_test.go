package utils

import "testing"

func TestPRNGDeterministic(t *testing.T) {
	a := NewPRNGService(42)
	b := NewPRNGService(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestPRNGZeroSeedRemembered(t *testing.T) {
	s := NewPRNGService(0)
	if s.Seed() == 0 {
		t.Fatal("zero seed should be replaced by a generated one")
	}
	replay := NewPRNGService(s.Seed())
	if s.Intn(1<<30) != replay.Intn(1<<30) {
		t.Error("remembered seed does not reproduce the sequence")
	}
}

func TestReseedRestartsSequence(t *testing.T) {
	s := NewPRNGService(7)
	first := s.Float64()
	s.Float64()
	s.Reseed(7)
	if s.Float64() != first {
		t.Error("Reseed did not restart the sequence")
	}
}

func TestRange(t *testing.T) {
	s := NewPRNGService(3)
	for i := 0; i < 200; i++ {
		v := s.Range(0.5, 0.1)
		if v < 0.1 || v >= 0.5 {
			t.Fatalf("Range out of bounds: %f", v)
		}
	}
}

func TestChooseWeighted(t *testing.T) {
	s := NewPRNGService(11)
	if got := s.ChooseWeighted(nil); got != -1 {
		t.Errorf("empty weights: got %d, want -1", got)
	}
	if got := s.ChooseWeighted([]int{0, 0}); got != 0 {
		t.Errorf("all-zero weights: got %d, want 0", got)
	}
	for i := 0; i < 100; i++ {
		if got := s.ChooseWeighted([]int{0, 5, 0}); got != 1 {
			t.Fatalf("only index 1 has weight, got %d", got)
		}
	}
	counts := make([]int, 2)
	for i := 0; i < 2000; i++ {
		counts[s.ChooseWeighted([]int{1, 3})]++
	}
	if counts[1] <= counts[0] {
		t.Errorf("heavier entry should be picked more often: %v", counts)
	}
}

func TestSetSeedKeepsZero(t *testing.T) {
	a := NewPRNGService(5)
	b := NewPRNGService(9)
	a.SetSeed(0)
	b.SetSeed(0)
	if a.Seed() != 0 || b.Seed() != 0 {
		t.Fatalf("seeds = %d, %d, want 0", a.Seed(), b.Seed())
	}
	for i := 0; i < 50; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("seed 0 sequences diverged at step %d", i)
		}
	}
}
