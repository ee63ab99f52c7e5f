//go:build windows

package launcher

import (
	"os"
	"os/exec"
	"time"
)

const killGracePeriod = 2 * time.Second

// configureCancel sends an interrupt to the direct child on context
// cancellation and lets the runtime kill it after the grace period. Without
// job objects any grandchildren may keep running; see the package doc.
func configureCancel(cmd *exec.Cmd) {
	cmd.WaitDelay = killGracePeriod
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return cmd.Process.Signal(os.Interrupt)
	}
}

func signalExitCode(_ *exec.ExitError) (int, bool) {
	return 0, false
}
