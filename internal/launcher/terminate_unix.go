//go:build !windows

package launcher

import (
	"errors"
	"os/exec"
	"syscall"
	"time"
)

const killGracePeriod = 2 * time.Second

// configureCancel arranges a graceful shutdown when the run context is
// cancelled: SIGTERM to the child's process group first, with the runtime
// escalating to a kill once the grace period elapses.
func configureCancel(cmd *exec.Cmd) {
	cmd.WaitDelay = killGracePeriod
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
		if err != nil && !errors.Is(err, syscall.ESRCH) {
			return cmd.Process.Signal(syscall.SIGTERM)
		}
		return nil
	}
}

func signalExitCode(err *exec.ExitError) (int, bool) {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return 128 + int(ws.Signal()), true
}
