package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Called
// by the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the terraviz CLI and returns an error if any command
// fails.
//
// The root command wires all subcommands (poly, river, town, render,
// cache, completion), configures logging from the --verbose flag, and
// attaches the logger to the command context for the build pipeline.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "terraviz",
		Short:        "Terraviz draws terrain-generator exports as maps",
		Long:         `Terraviz reads the JSON documents emitted by a procedural terrain generator — polygon meshes, river networks, and town graphs — and renders them as positioned node/edge drawings.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("terraviz %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config dir)")

	root.AddCommand(newPolyCmd())
	root.AddCommand(newRiverCmd())
	root.AddCommand(newTownCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// configPath is the --config override, shared by all commands.
var configPath string
