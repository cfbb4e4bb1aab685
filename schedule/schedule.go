// Package schedule derives the lifecycle status of time-boxed events
// (tournaments, prediction campaigns) from their start/end instants.
package schedule

import "time"

// Status of an event relative to the current time.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Window is a half-open interval [Start, End). All instants are UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration of the window. Display use only; the window itself is authoritative.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Valid reports whether the window has positive length.
func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

// Classify maps now against the window:
//
//	now < Start          -> upcoming
//	Start <= now < End   -> live
//	now >= End           -> completed
//
// Total for any input. A degenerate window (End <= Start) has an empty live
// phase and classifies as completed from Start onward.
func Classify(now time.Time, w Window) Status {
	if now.Before(w.Start) {
		return StatusUpcoming
	}
	if now.Before(w.End) {
		return StatusLive
	}
	return StatusCompleted
}

// IsLive reports whether now falls inside the window, i.e. [Start, End).
func IsLive(now time.Time, w Window) bool {
	return Classify(now, w) == StatusLive
}

// Overlaps reports whether two half-open windows share any instant.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}
