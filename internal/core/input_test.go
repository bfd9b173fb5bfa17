package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionUndo)
	if !f.Has(ActionLeft) || !f.Has(ActionUndo) {
		t.Error("frame should hold the set actions")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not hold unset actions")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("Clear() should drop all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should not report actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set() on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionUndo.String() != "Undo" {
		t.Errorf("ActionUndo.String() = %q", ActionUndo.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
