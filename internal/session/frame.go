package session

import (
	"brains3d/internal/core"
	"brains3d/internal/sims/briansbrain"
)

// Frame is a published view of the automaton after a change.
type Frame struct {
	Generation uint64             `json:"generation"`
	Running    bool               `json:"running"`
	Size       core.Size          `json:"size"`
	Census     briansbrain.Census `json:"census"`
	// Cells holds one ASCII digit per cell ('0' ready, '1' firing,
	// '2' refractory) in grid index order.
	Cells string `json:"cells"`
}

// StateAt decodes the state of cell (x, y, z) from the frame.
func (f Frame) StateAt(x, y, z int) (briansbrain.CellState, bool) {
	if !f.Size.Contains(x, y, z) {
		return briansbrain.Ready, false
	}
	idx := f.Size.Index(x, y, z)
	if idx >= len(f.Cells) {
		return briansbrain.Ready, false
	}
	return briansbrain.CellState(f.Cells[idx] - '0'), true
}

// frameOf captures e into a Frame, reusing buf as scratch space.
func frameOf(e *briansbrain.Engine, buf []briansbrain.CellState) (Frame, []briansbrain.CellState) {
	g := e.Grid()
	buf = g.CopyCells(buf)
	digits := make([]byte, len(buf))
	for i, s := range buf {
		digits[i] = '0' + byte(s)
	}
	return Frame{
		Generation: e.Generation(),
		Running:    e.Running(),
		Size:       g.Size(),
		Census:     g.Census(),
		Cells:      string(digits),
	}, buf
}
