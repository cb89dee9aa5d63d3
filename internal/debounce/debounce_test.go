package debounce

import "testing"

func TestGate_OnlyLatestGenerationSettles(t *testing.T) {
	var g Gate

	// Rapid input: c, cl, cle each arm a generation before the prior
	// one's quiet period elapses.
	t1 := g.Arm()
	t2 := g.Arm()
	t3 := g.Arm()

	if g.Settled(t1) || g.Settled(t2) {
		t.Fatalf("superseded tokens settled, want only the latest")
	}
	if !g.Settled(t3) {
		t.Fatalf("latest token did not settle")
	}

	// A wakeup consumes nothing; the token stays current until superseded.
	if !g.Settled(t3) {
		t.Fatalf("token invalidated by checking, want idempotent")
	}
}

func TestGate_ZeroTokenNeverSettles(t *testing.T) {
	var g Gate
	if g.Settled(0) {
		t.Fatalf("zero token settled, want never")
	}
}

func TestGate_CancelInvalidatesPending(t *testing.T) {
	var g Gate
	tok := g.Arm()
	g.Cancel()
	if g.Settled(tok) {
		t.Fatalf("cancelled token settled, want invalidated")
	}
}
