package launcher

// State identifies where a managed child process is in its lifecycle.
type State string

const (
	// StateIdle is the state of a launcher that has not spawned yet.
	StateIdle State = "idle"
	// StateRunning means the child has been spawned and no cancellation has
	// been requested.
	StateRunning State = "running"
	// StateCancelRequested means an interrupt or termination request was
	// received while the child was running. Entered at most once per run.
	StateCancelRequested State = "cancel_requested"
	// StateTerminated is terminal: the child exited or was forcibly stopped.
	StateTerminated State = "terminated"
)
