// Package feedback delivers game events to side channels such as the
// terminal bell and the log. Delivery failures are logged and never reach
// the game session.
package feedback

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Kind identifies what happened in a session.
type Kind int

const (
	GridChanged Kind = iota + 1
	WinReached
	GameOverReached
)

// String returns the event name used in logs.
func (k Kind) String() string {
	switch k {
	case GridChanged:
		return "grid_changed"
	case WinReached:
		return "win"
	case GameOverReached:
		return "game_over"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event describes a session transition.
type Event struct {
	Kind    Kind
	RunID   string
	Variant string
	Score   int // Cumulative score after the move
	Gained  int // Score gained by the move
	MaxTile int
	Moves   int
}

// Notifier receives session events. Implementations must not block.
type Notifier interface {
	Notify(Event)
}

// Sink is a single delivery channel that may fail.
type Sink interface {
	Deliver(Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event) error

// Deliver calls f(e).
func (f SinkFunc) Deliver(e Event) error {
	return f(e)
}

// Discard is a Notifier that drops every event.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Event) {}

// Dispatcher fans events out to sinks and logs failures.
type Dispatcher struct {
	logger *log.Logger
	sinks  []Sink
}

// NewDispatcher creates a dispatcher. A nil logger uses log.Default().
func NewDispatcher(logger *log.Logger, sinks ...Sink) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{logger: logger, sinks: sinks}
}

// Add registers another sink.
func (d *Dispatcher) Add(s Sink) {
	d.sinks = append(d.sinks, s)
}

// Notify delivers e to every sink. A failing sink does not stop the others.
func (d *Dispatcher) Notify(e Event) {
	for _, s := range d.sinks {
		if err := s.Deliver(e); err != nil {
			d.logger.Warn("feedback delivery failed", "event", e.Kind, "error", err)
		}
	}
}

// Bell rings the terminal bell for selected event kinds.
type Bell struct {
	w     io.Writer
	kinds []Kind
}

// NewBell creates a bell writing to w. With no kinds it rings on win and
// game over only.
func NewBell(w io.Writer, kinds ...Kind) *Bell {
	if len(kinds) == 0 {
		kinds = []Kind{WinReached, GameOverReached}
	}
	return &Bell{w: w, kinds: kinds}
}

// Deliver writes BEL if the event kind is selected.
func (b *Bell) Deliver(e Event) error {
	if !slices.Contains(b.kinds, e.Kind) {
		return nil
	}
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("feedback: bell: %w", err)
	}
	return nil
}

// LogSink records events in the log: moves at debug level, terminal
// states at info level.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a log sink.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Deliver writes e to the log.
func (s *LogSink) Deliver(e Event) error {
	switch e.Kind {
	case GridChanged:
		s.logger.Debug("move", "run", e.RunID, "gained", e.Gained, "score", e.Score, "moves", e.Moves)
	case WinReached:
		s.logger.Info("win tile reached", "run", e.RunID, "variant", e.Variant, "score", e.Score, "max_tile", e.MaxTile)
	case GameOverReached:
		s.logger.Info("game over", "run", e.RunID, "variant", e.Variant, "score", e.Score, "max_tile", e.MaxTile)
	}
	return nil
}
