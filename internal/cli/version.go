package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at release time via -ldflags.
var Version = "0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dalethls version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dalethls %s\n", Version)
		},
	}
}
