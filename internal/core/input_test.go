package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)
	if !f.Has(ActionUp) || !f.Has(ActionPause) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Empty() {
		t.Error("frame with actions should not be empty")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionUp) {
		t.Error("Clear should remove all actions")
	}
}

func TestActionIsDirection(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirection() {
			t.Errorf("%s should be a direction", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionConfirm, ActionRestart, ActionHome, ActionQuit} {
		if a.IsDirection() {
			t.Errorf("%s should not be a direction", a)
		}
	}
}

func TestSwipeAction(t *testing.T) {
	tests := []struct {
		name      string
		dx, dy    int
		threshold int
		expected  Action
	}{
		{"right", 10, 1, 2, ActionRight},
		{"left", -10, 2, 2, ActionLeft},
		{"down", 1, 3, 2, ActionDown},
		{"up", -2, -4, 2, ActionUp},
		{"too short", 2, 1, 2, ActionNone},
		{"no movement", 0, 0, 1, ActionNone},
		{"horizontal counts half", 6, 3, 2, ActionDown},
		{"tie goes vertical", 8, -4, 2, ActionUp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := SwipeAction(tc.dx, tc.dy, tc.threshold)
			if result != tc.expected {
				t.Errorf("SwipeAction(%d, %d, %d) = %s, expected %s", tc.dx, tc.dy, tc.threshold, result, tc.expected)
			}
		})
	}
}
