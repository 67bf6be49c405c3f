package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/am24/brickshop/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the brickshop version",
		// No container needed for version output.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "brickshop %s\n", buildinfo.GetVersion())
			return nil
		},
	}
}
