package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionRight)

	if !f.Has(ActionLeft) || !f.Has(ActionRight) {
		t.Error("Both directions should be recorded independently")
	}
	if f.Has(ActionStart) {
		t.Error("Start was never set")
	}

	f.Clear()
	if f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Error("Clear should remove all actions")
	}

	// Zero value frame is usable
	var zero InputFrame
	if zero.Has(ActionLeft) {
		t.Error("Zero frame should have no actions")
	}
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on zero frame should allocate the map")
	}
}

func TestInputFramePointer(t *testing.T) {
	f := NewInputFrame()
	if _, _, ok := f.Pointer(); ok {
		t.Fatal("New frame should have no pointer")
	}

	f.SetPointer(12, 3)
	f.SetPointer(17, 5)
	col, row, ok := f.Pointer()
	if !ok || col != 17 || row != 5 {
		t.Errorf("Pointer() = (%d, %d, %v), expected (17, 5, true)", col, row, ok)
	}

	clone := f.Clone()
	f.Clear()
	if _, _, ok := f.Pointer(); ok {
		t.Error("Clear should drop the pointer")
	}
	if col, row, ok := clone.Pointer(); !ok || col != 17 || row != 5 {
		t.Errorf("Clone should keep the pointer, got (%d, %d, %v)", col, row, ok)
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || ActionRestart.String() != "Restart" {
		t.Error("Unexpected action names")
	}
	if Action(99).String() != "Unknown" {
		t.Error("Unknown action should stringify as Unknown")
	}
}
