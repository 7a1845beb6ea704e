package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/term2048/internal/core"
)

// SwipeTracker turns a mouse press and release pair into a move.
type SwipeTracker struct {
	threshold int
	pressed   bool
	startX    int
	startY    int
}

// NewSwipeTracker creates a tracker that ignores drags shorter than
// threshold cells. A threshold below 1 is treated as 1.
func NewSwipeTracker(threshold int) *SwipeTracker {
	return &SwipeTracker{threshold: max(threshold, 1)}
}

// Handle feeds a mouse event to the tracker. It returns a move action when
// the event completes a swipe, ActionNone otherwise.
func (s *SwipeTracker) Handle(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return core.ActionNone
		}
		s.pressed = true
		s.startX, s.startY = msg.X, msg.Y

	case tea.MouseActionRelease:
		if !s.pressed {
			return core.ActionNone
		}
		s.pressed = false
		return core.SwipeAction(msg.X-s.startX, msg.Y-s.startY, s.threshold)
	}

	return core.ActionNone
}

// Cancel drops a swipe in progress.
func (s *SwipeTracker) Cancel() {
	s.pressed = false
}
