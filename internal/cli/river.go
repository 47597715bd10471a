package cli

import (
	"github.com/spf13/cobra"

	"github.com/terracarta/terraviz/pkg/discover"
)

// newRiverCmd creates the river command group. Drawing lives under the
// "graph" subcommand, leaving room for other river views later.
func newRiverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "river",
		Short: "Work with river network exports",
	}

	cmd.AddCommand(newRiverGraphCmd())
	return cmd
}

// newRiverGraphCmd creates the "river graph" subcommand.
func newRiverGraphCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Draw a river network export",
		Long: `Draw a river network export.

River documents carry a top-level "graph" array of node records. Nodes
below sea level with no upstream inlets are left out of the drawing, and
each flow edge is drawn with a pen width based on the upstream node's
Strahler order, so major rivers come out thicker than tributaries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, discover.DocRiver, args[0], flags)
		},
	}

	addBuildFlags(cmd, &flags)
	return cmd
}
