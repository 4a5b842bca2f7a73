package clarify

// Gate is the explicit-confirmation latch in front of recommendation
// display. It opens only on a deliberate user action and is reset whenever
// a new clarification session or evaluation cycle begins, so confirmation
// for one profile can never leak into a display of another.
type Gate struct {
	open bool
}

// Confirm opens the gate.
func (g *Gate) Confirm() {
	g.open = true
}

// IsOpen reports whether recommendations may be displayed.
func (g *Gate) IsOpen() bool {
	return g.open
}

// Reset closes the gate.
func (g *Gate) Reset() {
	g.open = false
}
