package launcher

import "time"

// EventType captures the notifications emitted while a child is supervised.
type EventType string

const (
	EventTypeStarting EventType = "starting"
	EventTypeStdout   EventType = "stdout"
	EventTypeStderr   EventType = "stderr"
	EventTypeExited   EventType = "exited"
	EventTypeError    EventType = "error"
)

// Event represents a single lifecycle or relay notification. Stdout and
// stderr events carry one non-empty line of child output each; they arrive in
// per-stream order but with no ordering guarantee between the two streams.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Message   string
	Err       error
}

func (l *Launcher) emit(t EventType, message string, err error) {
	l.events <- Event{
		Timestamp: time.Now(),
		Type:      t,
		Message:   message,
		Err:       err,
	}
}
