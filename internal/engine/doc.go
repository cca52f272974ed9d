// Package engine implements the heuristic scoring engine.
//
// Evaluate is a pure function from a page snapshot to a verdict: it
// performs no I/O, never suspends, and produces identical output for
// identical input. All rules are evaluated independently in a fixed
// order and penalties are purely additive; the score is clamped to the
// valid range once, after every rule has run.
package engine
