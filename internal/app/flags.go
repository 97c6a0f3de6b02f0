package app

import (
	"flag"

	"brains3d/internal/sims/briansbrain"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Width       int
	Height      int
	Depth       int
	Probability float64
	Interval    float64
	Seed        int64
	Paused      bool

	Scale    int
	TPS      int
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	sim := briansbrain.DefaultConfig()
	return &Config{
		Width:       sim.Width,
		Height:      sim.Height,
		Depth:       sim.Depth,
		Probability: sim.Probability,
		Interval:    sim.Interval,
		Seed:        sim.Seed,
		Paused:      !sim.Running,
		Scale:       12,
		TPS:         60,
		HUDWidth:    220,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width")
	fs.IntVar(&c.Height, "h", c.Height, "grid height")
	fs.IntVar(&c.Depth, "d", c.Depth, "grid depth (number of layers)")
	fs.Float64Var(&c.Probability, "p", c.Probability, "probability that a cell fires on reset")
	fs.Float64Var(&c.Interval, "interval", c.Interval, "seconds between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial population")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start paused")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
}

// Sim returns the simulation configuration described by the flags.
func (c *Config) Sim() briansbrain.Config {
	return briansbrain.Config{
		Width:       c.Width,
		Height:      c.Height,
		Depth:       c.Depth,
		Probability: c.Probability,
		Interval:    c.Interval,
		Seed:        c.Seed,
		Running:     !c.Paused,
	}
}
