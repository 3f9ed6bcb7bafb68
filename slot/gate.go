package slot

// Visible reports whether state s has anything to display. Only a ready
// slot renders; probing and loading show a neutral indicator owned by the
// view layer, and every other phase renders nothing.
func Visible(s State) bool {
	return s.Phase == PhaseReady
}

// Gate derives the one-way reveal flag that drives the slot's one-time
// reveal animation. Once open it stays open for the life of the instance;
// the instance (and its gate) cease to exist on teardown, so there is no
// flicker back to hidden while mounted.
type Gate struct {
	revealed bool
}

// Observe folds s into the gate and returns the current flag. Re-deriving
// the flag for the same ready state any number of times is idempotent.
func (g *Gate) Observe(s State) bool {
	if g.revealed {
		return true
	}
	g.revealed = Visible(s)
	return g.revealed
}
