package cli

import (
	stdcontext "context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daleth-lang/dalethls/internal/config"
)

func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *context) {
	var configFile string

	ctx := &context{configFile: &configFile}

	root := &cobra.Command{
		Use:   "dalethls",
		Short: "Install and run the Daleth language server",
		Long: "dalethls is a packaging shim around the daleth-lsp language server:\n" +
			"it installs the server through cargo, launches it, and forwards\n" +
			"interrupt and termination signals to it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// A bare invocation behaves like `dalethls run`, since editors
			// configure the wrapper as the server command with no arguments.
			return runServer(cmd, ctx)
		},
	}

	root.PersistentFlags().
		StringVarP(&configFile, "config", "f", "", "Path to dalethls configuration file")

	root.AddCommand(newRunCmd(ctx))
	root.AddCommand(newInstallCmd(ctx))
	root.AddCommand(newUninstallCmd(ctx))
	root.AddCommand(newDoctorCmd(ctx))
	root.AddCommand(newVersionCmd())

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		var coded *exitCodeError
		if errors.As(err, &coded) {
			// The diagnostic line was already emitted by the event relay.
			os.Exit(coded.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type context struct {
	configFile *string
}

func (c *context) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*c.configFile)
	if err != nil {
		return nil, err
	}
	cfg.Apply()
	return cfg, nil
}

// exitCodeError mirrors a failed child's exit status onto the wrapper process
// without printing a second diagnostic.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
