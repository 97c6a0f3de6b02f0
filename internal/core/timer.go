package core

// Gate decides when a time-driven simulation should advance. Time is given
// by the caller in seconds, so the gate itself never reads a clock.
//
// At most one advance is reported per call: if several intervals elapsed
// since the last advance they collapse into one.
type Gate struct {
	interval float64
	last     float64
}

// NewGate constructs a Gate that opens once per interval seconds. The last
// update time starts at zero.
func NewGate(interval float64) *Gate {
	return &Gate{interval: interval}
}

// Interval returns the configured interval in seconds.
func (g *Gate) Interval() float64 { return g.interval }

// SetInterval changes the interval. It is safe to call from the main loop.
func (g *Gate) SetInterval(interval float64) { g.interval = interval }

// Last returns the time of the most recent advance.
func (g *Gate) Last() float64 { return g.last }

// Due reports whether the simulation should advance at now, and if so
// records now as the last update time.
func (g *Gate) Due(now float64) bool {
	if now-g.last < g.interval {
		return false
	}
	g.last = now
	return true
}
