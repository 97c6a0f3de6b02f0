package core

// Size describes the dimensions of a three-dimensional simulation grid.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
	D int `json:"d"`
}

// Coord addresses a single cell.
type Coord struct {
	X, Y, Z int
}

// Len returns the number of cells a grid of this size holds.
func (s Size) Len() int { return s.W * s.H * s.D }

// Valid reports whether every dimension is positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 && s.D > 0 }

// Contains reports whether (x, y, z) lies inside the grid.
func (s Size) Contains(x, y, z int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H && z >= 0 && z < s.D
}
