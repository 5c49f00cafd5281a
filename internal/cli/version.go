package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curbmap/pkg/curblr"
)

const modulePath = "github.com/mesh-intelligence/curbmap"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the curbmap version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "curbmap v%s\nmodule: %s\n", curblr.Version, modulePath)
			return nil
		},
	}
}
