package briansbrain

// CellState is the state of a single Brian's Brain cell.
type CellState uint8

const (
	// Ready cells are off and may fire.
	Ready CellState = 0
	// Firing cells are on.
	Firing CellState = 1
	// Refractory cells are dying and cannot fire on the next generation.
	Refractory CellState = 2
)

// Valid reports whether s is one of the three defined states.
func (s CellState) Valid() bool { return s <= Refractory }

func (s CellState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Firing:
		return "firing"
	case Refractory:
		return "refractory"
	}
	return "invalid"
}

// next applies the transition rule for a cell with n firing neighbours.
func (s CellState) next(n int) CellState {
	switch s {
	case Firing:
		return Refractory
	case Refractory:
		return Ready
	}
	if n == 2 {
		return Firing
	}
	return Ready
}

// toggled returns the state a user toggle moves s into.
func (s CellState) toggled() CellState {
	if s == Firing {
		return Ready
	}
	return Firing
}
