package core

import "testing"

func TestGateCollapsesElapsedIntervals(t *testing.T) {
	g := NewGate(0.5)

	steps := 0
	for _, now := range []float64{0.0, 0.3, 0.6} {
		if g.Due(now) {
			steps++
		}
	}
	if steps != 1 {
		t.Fatalf("expected exactly one advance, got %d", steps)
	}
	if g.Last() != 0.6 {
		t.Fatalf("expected last update at 0.6, got %f", g.Last())
	}

	// Five intervals elapsed; still only one advance.
	if !g.Due(3.1) {
		t.Fatal("expected gate to open after a long pause")
	}
	if g.Due(3.2) {
		t.Fatal("gate must not open again before a full interval")
	}
}

func TestGateSetInterval(t *testing.T) {
	g := NewGate(1)
	if g.Due(0.5) {
		t.Fatal("gate opened early")
	}
	g.SetInterval(0.25)
	if !g.Due(0.5) {
		t.Fatal("expected shorter interval to take effect immediately")
	}
}
