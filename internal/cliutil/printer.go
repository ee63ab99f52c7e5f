// Package cliutil renders launcher events on the wrapper's own streams.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/daleth-lang/dalethls/internal/launcher"
)

// execErrorMarker prefixes the single diagnostic line emitted for a failed
// run. Tooling that wraps dalethls greps for it, so the marker is stable.
const execErrorMarker = "exec error"

// ExecErrorLine renders the diagnostic line for a completion error.
func ExecErrorLine(err error) string {
	return fmt.Sprintf("%s: %v", execErrorMarker, err)
}

// PrintEvents relays launcher events until the stream closes: child stdout
// lines to stdout, child stderr lines to stderr, and the terminal error (if
// any) as one diagnostic line on stdout. Lifecycle events carry no output.
func PrintEvents(stdout, stderr io.Writer, events <-chan launcher.Event) {
	for evt := range events {
		switch evt.Type {
		case launcher.EventTypeStdout:
			fmt.Fprintln(stdout, evt.Message)
		case launcher.EventTypeStderr:
			fmt.Fprintln(stderr, evt.Message)
		case launcher.EventTypeError:
			line := ExecErrorLine(evt.Err)
			if IsTerminal(stdout) {
				line = color.RedString(line)
			}
			fmt.Fprintln(stdout, line)
		}
	}
}

// IsTerminal reports whether the writer is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
