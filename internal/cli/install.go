package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daleth-lang/dalethls/internal/toolchain"
)

func newInstallCmd(ctx *context) *cobra.Command {
	var ifNeeded bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the daleth-lsp server through cargo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}

			if ifNeeded {
				version, err := toolchain.InstalledVersion(cmd.Context(), cfg.Server.Binary)
				if err == nil && toolchain.Supported(version) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s already installed\n", cfg.Server.Binary, version)
					return nil
				}
			}

			cargo, err := toolchain.EnsureToolchain(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := cargo.Install(cmd.Context(), cfg.Server.Version); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s installed\n", toolchain.ServerBinary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ifNeeded, "if-needed", false, "Skip installation when a supported server is already present")
	return cmd
}
