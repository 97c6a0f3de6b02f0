package briansbrain

import (
	"errors"
	"fmt"

	"brains3d/internal/core"
)

// Engine gates generation steps of a Grid on elapsed time and a run flag.
//
// Like Grid, an Engine must only be driven from one goroutine.
type Engine struct {
	grid       *Grid
	gate       *core.Gate
	running    bool
	generation uint64
}

// NewEngine wraps grid, advancing it once per interval seconds while running.
func NewEngine(grid *Grid, interval float64, running bool) (*Engine, error) {
	if grid == nil {
		return nil, errors.New("briansbrain: nil grid")
	}
	if !(interval > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	return &Engine{grid: grid, gate: core.NewGate(interval), running: running}, nil
}

// New builds a seeded grid and engine from cfg.
func New(cfg Config) (*Engine, error) {
	rng := core.NewRNG(cfg.Seed)
	grid, err := NewGrid(cfg.Width, cfg.Height, cfg.Depth, cfg.Probability, rng)
	if err != nil {
		return nil, err
	}
	return NewEngine(grid, cfg.Interval, cfg.Running)
}

// Name identifies the simulation.
func (e *Engine) Name() string { return "briansbrain" }

// Grid exposes the wrapped grid.
func (e *Engine) Grid() *Grid { return e.grid }

// Running reports whether Tick advances the simulation.
func (e *Engine) Running() bool { return e.running }

// Generation returns the number of generations advanced so far.
func (e *Engine) Generation() uint64 { return e.generation }

// Interval returns the generation interval in seconds.
func (e *Engine) Interval() float64 { return e.gate.Interval() }

// SetInterval changes the generation interval.
func (e *Engine) SetInterval(interval float64) error {
	if !(interval > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	e.gate.SetInterval(interval)
	return nil
}

// Tick is the per-frame entry point. now is the host clock in seconds. It
// reports whether a generation was advanced.
func (e *Engine) Tick(now float64) bool {
	if !e.running {
		return false
	}
	if !e.gate.Due(now) {
		return false
	}
	e.Step()
	return true
}

// Step advances exactly one generation, ignoring the run flag and timing.
func (e *Engine) Step() {
	e.grid.Advance()
	e.generation++
}

// ToggleRunning flips the run flag and returns the new value.
func (e *Engine) ToggleRunning() bool {
	e.running = !e.running
	return e.running
}

// ToggleCellAt flips the cell at (x, y, z) between firing and ready. A
// refractory cell fires. It returns the new state.
func (e *Engine) ToggleCellAt(x, y, z int) (CellState, error) {
	s, err := e.grid.StateAt(x, y, z)
	if err != nil {
		return s, err
	}
	s = s.toggled()
	if err := e.grid.SetState(x, y, z, s); err != nil {
		return s, err
	}
	return s, nil
}

// ResetGrid repopulates the grid. The run flag and schedule are kept.
func (e *Engine) ResetGrid() {
	e.grid.Reset()
}

// ResetWithSeed repopulates the grid from a fresh seeded source.
func (e *Engine) ResetWithSeed(seed int64) {
	e.grid.Reseed(core.NewRNG(seed))
	e.grid.Reset()
}
