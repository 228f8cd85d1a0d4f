package game

import "fmt"

// Remaining is how many turns an effect has left. Until an extendable effect
// outlives its minimum lifetime the observer only knows a range; after that
// the extension item is confirmed and the value is exact.
type Remaining struct {
	Min int
	Max int
}

// Exact reports whether the remaining duration is a single known value.
func (r Remaining) Exact() bool { return r.Min == r.Max }

func (r Remaining) String() string {
	if r.Exact() {
		return fmt.Sprintf("%d", r.Max)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// remaining computes the duration left for a timed effect at the given turn.
// It is a pure read: the confirmedExtended flag only flips during AdvanceTurn.
func (e timedEffect) remaining(turn int) (Remaining, bool) {
	if !e.lifetime.Timed() {
		return Remaining{}, false
	}
	// The setting turn counts as the effect's first turn: rain started on
	// turn 1 and queried on turn 3 is in its third turn.
	elapsed := turn - e.startTurn + 1
	if elapsed < 1 {
		elapsed = 1
	}
	if e.confirmedExtended || elapsed >= e.lifetime.Min {
		left := e.lifetime.Max - elapsed
		if left < 1 {
			// Still observed active, so never report zero or negative.
			left = 1
		}
		return Remaining{Min: left, Max: left}, true
	}
	return Remaining{Min: e.lifetime.Min - elapsed, Max: e.lifetime.Max - elapsed}, true
}

// outlivedMinimum reports whether the effect has survived past its minimum
// lifetime, which is the trigger for confirming an extension.
func (e timedEffect) outlivedMinimum(turn int) bool {
	return e.lifetime.Timed() && !e.lifetime.Fixed() && turn-e.startTurn+1 >= e.lifetime.Min
}
