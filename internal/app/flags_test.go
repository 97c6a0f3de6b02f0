package app

import (
	"flag"
	"testing"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-w", "8", "-d", "3", "-p", "0.4", "-interval", "0.25", "-paused", "-seed", "5"})
	if err != nil {
		t.Fatal(err)
	}

	sim := cfg.Sim()
	if sim.Width != 8 || sim.Height != 10 || sim.Depth != 3 {
		t.Fatalf("dimensions = %dx%dx%d", sim.Width, sim.Height, sim.Depth)
	}
	if sim.Probability != 0.4 || sim.Interval != 0.25 || sim.Seed != 5 || sim.Running {
		t.Fatalf("unexpected sim config %+v", sim)
	}
}
