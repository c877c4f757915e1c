// Package cli wires the reservation core into a command-line entrypoint.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRoot builds the tableturner command tree.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tableturner",
		Short:         "Restaurant table reservation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}
