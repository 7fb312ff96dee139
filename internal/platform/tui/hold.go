package tui

import (
	"time"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// DefaultHoldTimeout covers the terminal's delay before auto-repeat starts
// (660 ms on X11, about 500 ms on Windows), so a held key does not drop
// between its first press and its first repeat.
const DefaultHoldTimeout = 700 * time.Millisecond

// RepeatTimeout is the gap that ends a hold once the key is repeating.
// Repeat rates are 25 to 30 per second, so this spans several repeats.
const RepeatTimeout = 150 * time.Millisecond

// HoldTracker synthesizes key-up events. Terminals only report key-down
// (repeated while held), so an action counts as held until no press for it
// has been seen for a while: the hold timeout before the first repeat,
// RepeatTimeout after it.
type HoldTracker struct {
	timeout time.Duration
	held    map[core.Action]hold
}

type hold struct {
	last      time.Time
	repeating bool
}

// NewHoldTracker creates a tracker. A non-positive timeout uses the default.
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HoldTracker{
		timeout: timeout,
		held:    make(map[core.Action]hold),
	}
}

// Timeout returns the hold timeout.
func (h *HoldTracker) Timeout() time.Duration {
	return h.timeout
}

// Press records a key-down at now and queues a press event on frame.
// Repeats queue another press; consumers treat them idempotently.
func (h *HoldTracker) Press(a core.Action, now time.Time, frame *core.InputFrame) {
	frame.Set(a)
	if !Holdable(a) {
		return
	}
	_, repeating := h.held[a]
	h.held[a] = hold{last: now, repeating: repeating}
}

// Expire queues a release for every held action that has gone quiet.
// Releases come out in action order.
func (h *HoldTracker) Expire(now time.Time, frame *core.InputFrame) {
	for _, a := range [...]core.Action{core.ActionLeft, core.ActionRight} {
		k, ok := h.held[a]
		if !ok || now.Sub(k.last) < h.quiet(k) {
			continue
		}
		delete(h.held, a)
		frame.Release(a)
	}
}

func (h *HoldTracker) quiet(k hold) time.Duration {
	if k.repeating {
		return min(RepeatTimeout, h.timeout)
	}
	return h.timeout
}

// Reset forgets every held key without queueing releases.
func (h *HoldTracker) Reset() {
	for a := range h.held {
		delete(h.held, a)
	}
}
