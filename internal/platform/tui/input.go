package tui

import "github.com/vovakirdan/tui-breakout/internal/core"

// heldKeys emulates held direction keys. Terminals report presses (and
// auto-repeat) but never releases, so a press keeps its direction active
// for a number of ticks and each repeat refreshes it.
type heldKeys struct {
	holdTicks   int
	left, right int // Ticks remaining
}

func newHeldKeys(holdTicks int) heldKeys {
	return heldKeys{holdTicks: max(holdTicks, 1)}
}

// press activates a direction. Pressing one direction releases the other.
func (h *heldKeys) press(a core.Action) {
	switch a {
	case core.ActionLeft:
		h.left = h.holdTicks
		h.right = 0
	case core.ActionRight:
		h.right = h.holdTicks
		h.left = 0
	}
}

// apply adds the active directions to f and ages them by one tick.
func (h *heldKeys) apply(f *core.InputFrame) {
	if h.left > 0 {
		f.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		f.Set(core.ActionRight)
		h.right--
	}
}

func (h *heldKeys) release() {
	h.left, h.right = 0, 0
}
