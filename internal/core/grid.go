package core

// Index returns the linear slice index for coordinates (x, y, z). Layers are
// stored back to back, each in row-major order.
func (s Size) Index(x, y, z int) int { return (z*s.H+y)*s.W + x }

// CoordOf is the inverse of Index.
func (s Size) CoordOf(idx int) Coord {
	layer := s.W * s.H
	z := idx / layer
	rem := idx % layer
	return Coord{X: rem % s.W, Y: rem / s.W, Z: z}
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (s Size) Wrap(x, y, z int) Coord {
	return Coord{
		X: (x%s.W + s.W) % s.W,
		Y: (y%s.H + s.H) % s.H,
		Z: (z%s.D + s.D) % s.D,
	}
}
