package briansbrain

import (
	"fmt"

	"brains3d/internal/core"
)

// Rand is the random source used to seed a grid population.
type Rand interface {
	Float64() float64
}

// neighborOffsets lists the 26 Moore offsets around a cell in 3D.
var neighborOffsets = func() [26][3]int {
	var offs [26][3]int
	i := 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offs[i] = [3]int{dx, dy, dz}
				i++
			}
		}
	}
	return offs
}()

// Census counts cells by state.
type Census struct {
	Ready      int `json:"ready"`
	Firing     int `json:"firing"`
	Refractory int `json:"refractory"`
}

// Total returns the number of cells counted.
func (c Census) Total() int { return c.Ready + c.Firing + c.Refractory }

// Grid holds Brian's Brain cells on a three-dimensional torus.
//
// A Grid is not safe for concurrent use. All calls must come from a single
// goroutine.
type Grid struct {
	size core.Size
	p    float64
	rnd  Rand
	cur  []CellState
	nxt  []CellState
}

// NewGrid allocates a w*h*d grid and fires each cell independently with
// probability p. A nil rnd is replaced by a clock-seeded source.
func NewGrid(w, h, d int, p float64, rnd Rand) (*Grid, error) {
	size := core.Size{W: w, H: h, D: d}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimension, w, h, d)
	}
	if !(p >= 0 && p <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	if rnd == nil {
		rnd = core.NewTimeRNG()
	}
	n := size.Len()
	g := &Grid{
		size: size,
		p:    p,
		rnd:  rnd,
		cur:  make([]CellState, n),
		nxt:  make([]CellState, n),
	}
	g.populate()
	return g, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cur) }

// Probability returns the firing probability used for seeding.
func (g *Grid) Probability() float64 { return g.p }

func (g *Grid) checkBounds(x, y, z int) error {
	if !g.size.Contains(x, y, z) {
		return fmt.Errorf("%w: (%d,%d,%d) in %dx%dx%d", ErrOutOfBounds, x, y, z, g.size.W, g.size.H, g.size.D)
	}
	return nil
}

// StateAt returns the state of the cell at (x, y, z).
func (g *Grid) StateAt(x, y, z int) (CellState, error) {
	if err := g.checkBounds(x, y, z); err != nil {
		return Ready, err
	}
	return g.cur[g.size.Index(x, y, z)], nil
}

// SetState overwrites the state of the cell at (x, y, z).
func (g *Grid) SetState(x, y, z int, s CellState) error {
	if err := g.checkBounds(x, y, z); err != nil {
		return err
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidState, s)
	}
	g.cur[g.size.Index(x, y, z)] = s
	return nil
}

// Neighbors returns the 26 wrapped neighbour coordinates of (x, y, z). On
// small grids the same coordinate may appear more than once.
func (g *Grid) Neighbors(x, y, z int) ([26]core.Coord, error) {
	var out [26]core.Coord
	if err := g.checkBounds(x, y, z); err != nil {
		return out, err
	}
	for i, off := range neighborOffsets {
		out[i] = g.wrap(x+off[0], y+off[1], z+off[2])
	}
	return out, nil
}

// CountLiveNeighbors returns how many of the 26 neighbours of (x, y, z) are
// firing.
func (g *Grid) CountLiveNeighbors(x, y, z int) (int, error) {
	if err := g.checkBounds(x, y, z); err != nil {
		return 0, err
	}
	return g.liveNeighbors(x, y, z), nil
}

func (g *Grid) wrap(x, y, z int) core.Coord {
	return g.size.Wrap(x, y, z)
}

func (g *Grid) liveNeighbors(x, y, z int) int {
	n := 0
	for _, off := range neighborOffsets {
		c := g.wrap(x+off[0], y+off[1], z+off[2])
		if g.cur[g.size.Index(c.X, c.Y, c.Z)] == Firing {
			n++
		}
	}
	return n
}

// NextStates computes the successor of every cell from the current
// generation without modifying the grid.
func (g *Grid) NextStates() []CellState {
	next := make([]CellState, len(g.cur))
	g.computeInto(next)
	return next
}

func (g *Grid) computeInto(dst []CellState) {
	w, h, d := g.size.W, g.size.H, g.size.D
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := g.size.Index(x, y, z)
				s := g.cur[idx]
				n := 0
				// Only Ready cells depend on their neighbourhood.
				if s == Ready {
					n = g.liveNeighbors(x, y, z)
				}
				dst[idx] = s.next(n)
			}
		}
	}
}

// Commit replaces the current generation with next. The grid is left
// untouched if next has the wrong length or holds an invalid state.
func (g *Grid) Commit(next []CellState) error {
	if len(next) != len(g.cur) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrSizeMismatch, len(next), len(g.cur))
	}
	for i, s := range next {
		if !s.Valid() {
			return fmt.Errorf("%w: %d at index %d", ErrInvalidState, s, i)
		}
	}
	copy(g.cur, next)
	return nil
}

// Advance computes and commits one generation using the grid's scratch
// buffer.
func (g *Grid) Advance() {
	g.computeInto(g.nxt)
	g.cur, g.nxt = g.nxt, g.cur
}

// Reset clears the grid and fires each cell again with the configured
// probability.
func (g *Grid) Reset() {
	g.populate()
}

// Reseed replaces the random source used by Reset.
func (g *Grid) Reseed(rnd Rand) {
	if rnd != nil {
		g.rnd = rnd
	}
}

func (g *Grid) populate() {
	for i := range g.cur {
		g.cur[i] = Ready
		if g.rnd.Float64() < g.p {
			g.cur[i] = Firing
		}
	}
}

// CopyCells appends the current generation to dst[:0] and returns it.
func (g *Grid) CopyCells(dst []CellState) []CellState {
	return append(dst[:0], g.cur...)
}

// Census counts the cells of the current generation by state.
func (g *Grid) Census() Census {
	var c Census
	for _, s := range g.cur {
		switch s {
		case Firing:
			c.Firing++
		case Refractory:
			c.Refractory++
		default:
			c.Ready++
		}
	}
	return c
}
