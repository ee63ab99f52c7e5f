package cli

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/daleth-lang/dalethls/internal/cliutil"
	"github.com/daleth-lang/dalethls/internal/launcher"
)

func newRunCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Launch the language server and forward signals to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, ctx)
		},
	}
}

// runServer drives one launcher invocation: spawn, relay output, wait for the
// completion. A failed run (spawn error, signal death or non-zero exit)
// surfaces as an exitCodeError carrying the child's status.
func runServer(cmd *cobra.Command, ctx *context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	l := launcher.New(cfg.Server.Binary, launcher.WithSignalForwarding())
	if err := l.Start(cmd.Context()); err != nil {
		return err
	}

	var printer sync.WaitGroup
	printer.Add(1)
	go func() {
		defer printer.Done()
		cliutil.PrintEvents(cmd.OutOrStdout(), cmd.ErrOrStderr(), l.Events())
	}()

	res := <-l.Done()
	printer.Wait()

	if res.Err != nil {
		code := res.ExitCode
		if code <= 0 {
			code = 1
		}
		return &exitCodeError{code: code}
	}
	return nil
}
