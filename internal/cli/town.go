package cli

import (
	"github.com/spf13/cobra"

	"github.com/terracarta/terraviz/pkg/discover"
)

// newTownCmd creates the town command for town graph documents.
func newTownCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "town <file>",
		Short: "Draw a town graph export",
		Long: `Draw a town graph export.

Town documents carry explicit "nodes" and "edges" element tables, each
element a [record, bounding-box] pair. Edges referencing nodes missing
from the document are dropped with a warning instead of failing the
build.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, discover.DocTown, args[0], flags)
		},
	}

	addBuildFlags(cmd, &flags)
	return cmd
}
