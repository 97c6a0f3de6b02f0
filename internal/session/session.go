// Package session hosts an Engine on a single goroutine.
//
// Grid and Engine carry no locks, so every call into them has to come from
// one place. A Session owns the engine inside Run and turns each exported
// method into a command executed on that goroutine, in arrival order.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brains3d/internal/platform/logger"
	"brains3d/internal/sims/briansbrain"
)

// ErrClosed is returned by calls made after Run has returned.
var ErrClosed = errors.New("session: closed")

// DefaultFrameRate is how often Run ticks the engine when Options leave it unset.
const DefaultFrameRate = time.Second / 30

// Options configures a Session.
type Options struct {
	// FrameRate is the wall-clock period between engine ticks.
	FrameRate time.Duration
	// Publish receives a frame after every change. It runs on the session
	// goroutine.
	Publish func(Frame)
	Logger  *logger.Logger
}

type command struct {
	run   func(*briansbrain.Engine) bool
	reply chan struct{}
}

// Session serialises access to an Engine.
type Session struct {
	engine *briansbrain.Engine
	opts   Options
	cmds   chan command
	done   chan struct{}
	buf    []briansbrain.CellState
}

// New wraps engine. The engine must not be used directly once Run starts.
func New(engine *briansbrain.Engine, opts Options) *Session {
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Session{
		engine: engine,
		opts:   opts,
		cmds:   make(chan command),
		done:   make(chan struct{}),
	}
}

// Run drives the engine until ctx is cancelled. The host clock handed to
// Engine.Tick is the number of seconds since Run started.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	start := time.Now()
	ticker := time.NewTicker(s.opts.FrameRate)
	defer ticker.Stop()

	s.opts.Logger.Info("session started: %s grid, interval %.3fs, running=%v",
		sizeString(s.engine), s.engine.Interval(), s.engine.Running())
	s.publish()

	for {
		select {
		case <-ctx.Done():
			s.opts.Logger.Info("session stopped at generation %d", s.engine.Generation())
			return nil
		case <-ticker.C:
			if s.engine.Tick(time.Since(start).Seconds()) {
				s.publish()
			}
		case cmd := <-s.cmds:
			changed := cmd.run(s.engine)
			close(cmd.reply)
			if changed {
				s.publish()
			}
		}
	}
}

func (s *Session) publish() {
	if s.opts.Publish == nil {
		return
	}
	var f Frame
	f, s.buf = frameOf(s.engine, s.buf)
	s.opts.Publish(f)
}

// do runs fn on the session goroutine and waits for it to finish. ctx only
// bounds the wait for the session to accept the command; once accepted, fn
// writes into the caller's variables, so do always waits for the reply.
func (s *Session) do(ctx context.Context, fn func(*briansbrain.Engine) bool) error {
	cmd := command{run: fn, reply: make(chan struct{})}
	select {
	case s.cmds <- cmd:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-cmd.reply
	return nil
}

// ToggleCell toggles the cell at (x, y, z) and returns its new state.
func (s *Session) ToggleCell(ctx context.Context, x, y, z int) (briansbrain.CellState, error) {
	var (
		state briansbrain.CellState
		opErr error
	)
	err := s.do(ctx, func(e *briansbrain.Engine) bool {
		state, opErr = e.ToggleCellAt(x, y, z)
		return opErr == nil
	})
	if err != nil {
		return state, err
	}
	if opErr != nil {
		return state, fmt.Errorf("toggle cell: %w", opErr)
	}
	return state, nil
}

// ToggleRunning flips the run flag and returns the new value.
func (s *Session) ToggleRunning(ctx context.Context) (bool, error) {
	var running bool
	err := s.do(ctx, func(e *briansbrain.Engine) bool {
		running = e.ToggleRunning()
		return true
	})
	return running, err
}

// Reset repopulates the grid.
func (s *Session) Reset(ctx context.Context) error {
	return s.do(ctx, func(e *briansbrain.Engine) bool {
		e.ResetGrid()
		return true
	})
}

// Step advances a single generation.
func (s *Session) Step(ctx context.Context) error {
	return s.do(ctx, func(e *briansbrain.Engine) bool {
		e.Step()
		return true
	})
}

// Snapshot returns the current frame without publishing it.
func (s *Session) Snapshot(ctx context.Context) (Frame, error) {
	var f Frame
	err := s.do(ctx, func(e *briansbrain.Engine) bool {
		f, _ = frameOf(e, nil)
		return false
	})
	return f, err
}

func sizeString(e *briansbrain.Engine) string {
	size := e.Grid().Size()
	return fmt.Sprintf("%dx%dx%d", size.W, size.H, size.D)
}
