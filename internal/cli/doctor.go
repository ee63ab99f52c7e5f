package cli

import (
	stdcontext "context"
	"fmt"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daleth-lang/dalethls/internal/toolchain"
)

type doctorCheck struct {
	name string
	run  func(ctx stdcontext.Context) (string, error)
}

func newDoctorCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain and server installation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}

			checks := []doctorCheck{
				{
					name: "cargo",
					run: func(stdcontext.Context) (string, error) {
						cargo, err := toolchain.Locate()
						if err != nil {
							return "", err
						}
						return cargo.Path(), nil
					},
				},
				{
					name: cfg.Server.Binary,
					run: func(stdcontext.Context) (string, error) {
						return exec.LookPath(cfg.Server.Binary)
					},
				},
				{
					name: "server version",
					run: func(c stdcontext.Context) (string, error) {
						version, err := toolchain.InstalledVersion(c, cfg.Server.Binary)
						if err != nil {
							return "", err
						}
						if !toolchain.Supported(version) {
							return "", fmt.Errorf("%s is older than the minimum supported %s", version, toolchain.MinSupportedVersion)
						}
						return version, nil
					},
				},
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, check := range checks {
				detail, err := check.run(cmd.Context())
				if err != nil {
					failed++
					fmt.Fprintln(out, color.RedString(" ✘ %s: %v", check.name, err))
					continue
				}
				fmt.Fprintln(out, color.GreenString(" ✔ %s: %s", check.name, detail))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(checks))
			}
			return nil
		},
	}
}
