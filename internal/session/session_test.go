package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"brains3d/internal/core"
	"brains3d/internal/sims/briansbrain"
)

func newEngine(t *testing.T, interval float64, running bool) *briansbrain.Engine {
	t.Helper()
	g, err := briansbrain.NewGrid(4, 4, 4, 0, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	e, err := briansbrain.NewEngine(g, interval, running)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// start runs s in the background and returns a stop function that waits for
// Run to return.
func start(t *testing.T, s *Session) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Run returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run did not stop")
		}
	}
}

func TestCommandsRunOnSession(t *testing.T) {
	frames := make(chan Frame, 16)
	s := New(newEngine(t, 100, false), Options{
		FrameRate: 5 * time.Millisecond,
		Publish:   func(f Frame) { frames <- f },
	})
	stop := start(t, s)
	defer stop()

	ctx := context.Background()
	initial := <-frames
	if initial.Generation != 0 || initial.Census.Ready != 64 {
		t.Fatalf("initial frame = %+v", initial)
	}

	state, err := s.ToggleCell(ctx, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if state != briansbrain.Firing {
		t.Fatalf("toggled state = %v, want firing", state)
	}
	f := <-frames
	if got, ok := f.StateAt(1, 2, 3); !ok || got != briansbrain.Firing {
		t.Fatalf("published frame holds %v for toggled cell", got)
	}
	if f.Census.Firing != 1 {
		t.Fatalf("census after toggle = %+v", f.Census)
	}

	if err := s.Step(ctx); err != nil {
		t.Fatal(err)
	}
	f = <-frames
	if f.Generation != 1 {
		t.Fatalf("generation after step = %d, want 1", f.Generation)
	}
	if got, _ := f.StateAt(1, 2, 3); got != briansbrain.Refractory {
		t.Fatalf("stepped cell = %v, want refractory", got)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Generation != 1 || snap.Cells != f.Cells {
		t.Fatalf("snapshot %+v disagrees with last frame %+v", snap, f)
	}
}

func TestToggleCellOutOfBounds(t *testing.T) {
	s := New(newEngine(t, 100, false), Options{})
	stop := start(t, s)
	defer stop()

	_, err := s.ToggleCell(context.Background(), 4, 0, 0)
	if !errors.Is(err, briansbrain.ErrOutOfBounds) {
		t.Fatalf("ToggleCell error = %v, want ErrOutOfBounds", err)
	}
}

func TestRunTicksEngine(t *testing.T) {
	frames := make(chan Frame, 64)
	e := newEngine(t, 0.01, true)
	s := New(e, Options{
		FrameRate: 2 * time.Millisecond,
		Publish: func(f Frame) {
			select {
			case frames <- f:
			default:
			}
		},
	})
	stop := start(t, s)
	defer stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case f := <-frames:
			if f.Generation > 0 {
				return
			}
		case <-deadline:
			t.Fatal("engine never advanced")
		}
	}
}

func TestToggleRunningAndReset(t *testing.T) {
	s := New(newEngine(t, 100, false), Options{})
	stop := start(t, s)
	defer stop()
	ctx := context.Background()

	running, err := s.ToggleRunning(ctx)
	if err != nil || !running {
		t.Fatalf("ToggleRunning = %v, %v", running, err)
	}
	if _, err := s.ToggleCell(ctx, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// The grid was seeded with probability zero.
	if snap.Census.Firing != 0 || !snap.Running {
		t.Fatalf("snapshot after reset = %+v", snap)
	}
}

func TestConcurrentCallers(t *testing.T) {
	s := New(newEngine(t, 100, false), Options{})
	stop := start(t, s)
	defer stop()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			for j := 0; j < 2; j++ {
				if _, err := s.ToggleCell(ctx, x%4, x/4, 0); err != nil {
					t.Error(err)
				}
			}
		}(i)
	}
	wg.Wait()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Census.Firing != 0 {
		t.Fatalf("double toggles left %d cells firing", snap.Census.Firing)
	}
}

func TestCallsAfterStop(t *testing.T) {
	s := New(newEngine(t, 100, false), Options{})
	stop := start(t, s)
	stop()

	if err := s.Step(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("Step after stop = %v, want ErrClosed", err)
	}
}

func TestFrameJSON(t *testing.T) {
	e := newEngine(t, 1, true)
	if _, err := e.ToggleCellAt(0, 0, 0); err != nil {
		t.Fatal(err)
	}
	f, _ := frameOf(e, nil)
	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	cells, _ := decoded["cells"].(string)
	if len(cells) != 64 || cells[0] != '1' || cells[1] != '0' {
		t.Fatalf("cells = %q", cells)
	}
	size, _ := decoded["size"].(map[string]any)
	if size["w"] != 4.0 || size["d"] != 4.0 {
		t.Fatalf("size = %v", size)
	}
}

func TestSnapshotDeadlineOnLargeGrid(t *testing.T) {
	g, err := briansbrain.NewGrid(100, 100, 50, 0.2, core.NewRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	e, err := briansbrain.NewEngine(g, 100, false)
	if err != nil {
		t.Fatal(err)
	}
	s := New(e, Options{})
	stop := start(t, s)
	defer stop()

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Microsecond)
		f, err := s.Snapshot(ctx)
		cancel()
		if err != nil {
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("snapshot %d: %v", i, err)
			}
			continue
		}
		if len(f.Cells) != g.Len() || f.Census.Total() != g.Len() {
			t.Fatalf("snapshot %d incomplete: %d cells, census %+v", i, len(f.Cells), f.Census)
		}
	}
}

func TestFrameCensusMatchesGrid(t *testing.T) {
	g, err := briansbrain.NewGrid(5, 4, 3, 0.4, core.NewRNG(9))
	if err != nil {
		t.Fatal(err)
	}
	e, err := briansbrain.NewEngine(g, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	e.Step()
	f, _ := frameOf(e, nil)
	if f.Census != g.Census() {
		t.Fatalf("frame census %+v, grid census %+v", f.Census, g.Census())
	}
	counts := map[byte]int{}
	for i := 0; i < len(f.Cells); i++ {
		counts[f.Cells[i]]++
	}
	if counts['0'] != f.Census.Ready || counts['1'] != f.Census.Firing || counts['2'] != f.Census.Refractory {
		t.Fatalf("digits %v disagree with census %+v", counts, f.Census)
	}
}
