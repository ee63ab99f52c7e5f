package launcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// ErrAlreadyStarted is returned by Start when the launcher has already spawned
// its child. A Launcher manages exactly one invocation.
var ErrAlreadyStarted = errors.New("launcher already started")

// Result is the terminal outcome of a supervised run, delivered exactly once
// on Done. Err is non-nil for spawn failures, non-zero exits and signal
// deaths; ExitCode is the child's exit status when known, -1 otherwise.
type Result struct {
	Err      error
	ExitCode int
}

// Launcher runs one external command, relays its output and terminates it
// cleanly on request. At most one child process handle is active at any time.
type Launcher struct {
	command    string
	canceller  Canceller
	forwarding bool

	mu       sync.Mutex
	state    State
	cmd      *exec.Cmd
	relayErr error

	events   chan Event
	done     chan Result
	doneOnce sync.Once
}

// Option customises a Launcher at construction time.
type Option func(*Launcher)

// WithCanceller selects the cancellation capability. The default is the
// context-backed canceller; tests and constrained environments may pass
// NewNopCanceller to exercise the degraded mode.
func WithCanceller(c Canceller) Option {
	return func(l *Launcher) {
		if c != nil {
			l.canceller = c
		}
	}
}

// WithSignalForwarding installs interrupt/termination handlers for the
// lifetime of the run. Handlers are registered at spawn and removed once the
// completion fires, so repeated invocations do not leak handlers.
func WithSignalForwarding() Option {
	return func(l *Launcher) {
		l.forwarding = true
	}
}

// New constructs a launcher for the named executable, located via the OS
// search path. The command is spawned with no arguments and the inherited
// environment.
func New(command string, opts ...Option) *Launcher {
	l := &Launcher{
		command:   command,
		canceller: NewContextCanceller(),
		state:     StateIdle,
		events:    make(chan Event, 64),
		done:      make(chan Result, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Events returns the relay stream. It carries the starting notification, one
// event per non-empty child output line and the terminal exited/error event,
// then closes. Callers must drain it.
func (l *Launcher) Events() <-chan Event {
	return l.events
}

// Done returns the one-shot completion channel. It receives exactly one
// Result, strictly after the child has exited (or the spawn failed) and after
// Events has been closed.
func (l *Launcher) Done() <-chan Result {
	return l.done
}

// State reports the current lifecycle state.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start spawns the managed executable and returns immediately; the rest of
// the lifecycle is driven through Events and Done. A spawn failure (for
// example the executable missing from the search path) is not returned here:
// it surfaces as the run's completion, with a non-nil Result.Err. Start only
// errors when called twice.
func (l *Launcher) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.state != StateIdle {
		l.mu.Unlock()
		return ErrAlreadyStarted
	}
	l.state = StateRunning
	l.mu.Unlock()

	runCtx := l.canceller.Bind(ctx)

	cmd := exec.CommandContext(runCtx, l.command)
	configureCmdSysProcAttr(cmd)
	configureCancel(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		l.finish(fmt.Errorf("%s stdout: %w", l.command, err))
		return nil
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		l.finish(fmt.Errorf("%s stderr: %w", l.command, err))
		return nil
	}

	l.emit(EventTypeStarting, l.command, nil)

	if err := cmd.Start(); err != nil {
		l.finish(fmt.Errorf("spawn %s: %w", l.command, err))
		return nil
	}

	l.mu.Lock()
	l.cmd = cmd
	l.mu.Unlock()

	removeHandlers := l.forwardSignals()

	var wg sync.WaitGroup
	wg.Add(2)
	go l.relay(stdout, EventTypeStdout, &wg)
	go l.relay(stderr, EventTypeStderr, &wg)

	go func() {
		wg.Wait()
		err := cmd.Wait()
		removeHandlers()
		l.mu.Lock()
		relayErr := l.relayErr
		l.mu.Unlock()
		if err == nil {
			err = relayErr
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", l.command, err)
		}
		l.finish(err)
	}()

	return nil
}

// RequestCancel moves the run from running to cancel-requested and fires the
// canceller. Requests received after the first, or outside the running state,
// are no-ops.
func (l *Launcher) RequestCancel() {
	l.mu.Lock()
	if l.state != StateRunning {
		l.mu.Unlock()
		return
	}
	l.state = StateCancelRequested
	l.mu.Unlock()
	l.canceller.RequestCancel()
}

// relay forwards non-empty child output lines. A scanner failure (for
// example a line beyond the buffer limit) is recorded and folded into the
// completion rather than dropped; the stream keeps draining so the child
// never blocks on a full pipe.
func (l *Launcher) relay(r io.Reader, source EventType, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		l.emit(source, line, nil)
	}
	if err := scanner.Err(); err != nil {
		l.mu.Lock()
		if l.relayErr == nil {
			l.relayErr = fmt.Errorf("%s relay: %w", source, err)
		}
		l.mu.Unlock()
		_, _ = io.Copy(io.Discard, r)
	}
}

// finish resolves the run exactly once: emits the terminal event, closes the
// event stream and delivers the Result.
func (l *Launcher) finish(err error) {
	l.doneOnce.Do(func() {
		l.mu.Lock()
		l.state = StateTerminated
		l.mu.Unlock()

		if err != nil {
			l.emit(EventTypeError, err.Error(), err)
		} else {
			l.emit(EventTypeExited, l.command, nil)
		}
		close(l.events)

		l.done <- Result{Err: err, ExitCode: exitCode(err)}
		close(l.done)
	})
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return -1
	}
	if code, ok := signalExitCode(exitErr); ok {
		return code
	}
	return exitErr.ExitCode()
}
