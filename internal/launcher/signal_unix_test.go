//go:build !windows

package launcher

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"
)

func TestTerminationSignalRequestsCancel(t *testing.T) {
	installFixture(t, "daleth-patient", "sleep 30")

	l := New("daleth-patient", WithSignalForwarding())
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := l.State(); got != StateRunning {
		t.Fatalf("expected running state after start, got %s", got)
	}

	// The handlers are installed by the time Start returns, so the signal is
	// intercepted instead of killing the test process.
	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send SIGTERM: %v", err)
	}

	drain(t, l)
	res := awaitResult(t, l)

	if res.Err == nil {
		t.Fatal("expected the forwarded signal to end the run with an error")
	}
	if res.ExitCode != 143 {
		t.Fatalf("exit code = %d, want 143 for a SIGTERM death", res.ExitCode)
	}
	if got := l.State(); got != StateTerminated {
		t.Fatalf("expected terminated state, got %s", got)
	}
}

func TestSignalHandlersRemovedAfterCompletion(t *testing.T) {
	installFixture(t, "daleth-fleeting", "exit 0")

	l := New("daleth-fleeting", WithSignalForwarding())
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	drain(t, l)
	if res := awaitResult(t, l); res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}

	// Catch the follow-up signal ourselves; with the launcher's handlers
	// removed it must land here, and the finished launcher must stay inert.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM)
	defer signal.Stop(ch)

	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send SIGTERM: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("signal not delivered to the test handler")
	}
	if got := l.State(); got != StateTerminated {
		t.Fatalf("completed launcher reacted to a late signal: %s", got)
	}
}
