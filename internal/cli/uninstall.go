package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daleth-lang/dalethls/internal/toolchain"
)

func newUninstallCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the daleth-lsp server through cargo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.loadConfig(); err != nil {
				return err
			}

			cargo, err := toolchain.Locate(toolchain.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			if err != nil {
				if errors.Is(err, toolchain.ErrCargoNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "cargo not found, nothing to uninstall")
					return nil
				}
				return err
			}

			if err := cargo.Uninstall(cmd.Context()); err != nil {
				if errors.Is(err, toolchain.ErrNotInstalled) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not installed\n", toolchain.ServerBinary)
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s uninstalled\n", toolchain.ServerBinary)
			return nil
		},
	}
}
