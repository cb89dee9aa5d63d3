// Package debounce provides the generation gate behind delayed keyword
// propagation. Each input change arms a new generation and schedules a
// wakeup for one quiet period later; arming supersedes every pending
// generation, so only a wakeup whose token is still current may emit.
// Nothing is queued: at most the latest value within a quiet window
// ever gets through.
package debounce

// Token identifies one scheduled emission.
type Token uint64

// Gate tracks the current generation. The zero value is ready to use.
// It is not safe for concurrent use; it belongs to a single event loop.
type Gate struct {
	current Token
}

// Arm starts a new generation, invalidating any pending one, and
// returns the token the eventual wakeup must present.
func (g *Gate) Arm() Token {
	g.current++
	return g.current
}

// Settled reports whether the token is still the current generation,
// i.e. no newer input arrived during its quiet period.
func (g *Gate) Settled(t Token) bool {
	return t != 0 && t == g.current
}

// Cancel invalidates any pending generation without arming a new one.
// Used when the input is abandoned so a late wakeup can never emit.
func (g *Gate) Cancel() {
	g.current++
}
