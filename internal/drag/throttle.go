package drag

import "time"

// throttle is a leading-edge, wall-clock window gate: the first event
// passes and opens the window, later events inside it are dropped.
// Comparisons use event timestamps, not time.Now, so filtering is
// deterministic under test.
type throttle struct {
	interval time.Duration
	last     time.Time
}

// allow reports whether an event at t passes, advancing the window when
// it does.
func (th *throttle) allow(t time.Time) bool {
	if !th.last.IsZero() && t.Sub(th.last) < th.interval {
		return false
	}
	th.last = t
	return true
}

// reset reopens the window, so the next event always passes.
func (th *throttle) reset() {
	th.last = time.Time{}
}
