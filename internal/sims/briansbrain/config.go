package briansbrain

import "strconv"

// Config holds parameters for the Brian's Brain simulation.
type Config struct {
	Width  int
	Height int
	Depth  int

	// Probability that a cell fires when the grid is seeded.
	Probability float64
	// Interval between generations, in seconds.
	Interval float64

	Seed    int64
	Running bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       10,
		Height:      10,
		Depth:       10,
		Probability: 0.2,
		Interval:    0.5,
		Seed:        42,
		Running:     true,
	}
}

// FromMap populates a Config from a string map. Invalid entries are ignored
// and leave the default in place.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["d"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Depth = parsed
		}
	}
	if v, ok := cfg["p"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Probability = parsed
		}
	}
	if v, ok := cfg["interval"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Interval = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["running"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Running = parsed
		}
	}
	return c
}
