package cli

import (
	"github.com/spf13/cobra"

	"github.com/terracarta/terraviz/pkg/discover"
)

// newPolyCmd creates the poly command for nested polygon/point documents.
func newPolyCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "poly <file>",
		Short: "Draw a polygon mesh export",
		Long: `Draw a polygon mesh export.

Polygon documents have no fixed schema: polygon records (objects with an
"exterior" ring) and point records (objects with numeric "x" and "y")
are matched by shape wherever they occur in the document. Each polygon
contributes its ring as a cycle of nodes and edges; each point
contributes a single node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, discover.DocNested, args[0], flags)
		},
	}

	addBuildFlags(cmd, &flags)
	return cmd
}
