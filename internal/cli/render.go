package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terracarta/terraviz/pkg/cache"
	"github.com/terracarta/terraviz/pkg/config"
	"github.com/terracarta/terraviz/pkg/errors"
	gio "github.com/terracarta/terraviz/pkg/io"
)

// newRenderCmd creates the render command for previously exported graphs.
func newRenderCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Re-render an exported graph",
		Long: `Re-render an exported graph.

Takes a graph.json file produced by a document command with -f json and
renders it without repeating discovery. Positions and edge styling are
already part of the file, so this step is purely drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	addBuildFlags(cmd, &flags)
	return cmd
}

func runRender(cmd *cobra.Command, input string, flags buildFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := validateFormat(flags.format); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", input)
	}

	opts := renderOptions(cfg)
	out := outputPath(input, flags.output, flags.format)

	store, err := newCacheBackend(ctx, cfg, flags.noCache)
	if err != nil {
		logger.Warn("cache unavailable, continuing without it", "err", err)
		store = cache.NewNullCache()
	}
	defer store.Close()

	key := cache.RenderKey(raw, "render", flags.format, opts)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		logger.Debug("artifact served from cache", "key", key)
		if err := os.WriteFile(out, data, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
		}
		printSuccess("Rendered %s", input)
		printFile(out)
		printStats(0, 0, true)
		return nil
	}

	g, err := gio.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnrecognizedDocument, err, "load graph %s", input)
	}
	for _, d := range g.Diagnostics() {
		logger.Warn("dropped dangling edge", "from", d.From, "to", d.To, "missing", d.Missing)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()
	data, err := produceArtifact(ctx, g, flags.format, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(out, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
	}
	if err := store.Set(ctx, key, data, cfg.Cache.TTL.Std()); err != nil {
		logger.Debug("cache store failed", "err", err)
	}

	printSuccess("Rendered %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	printFile(out)
	printStats(g.NodeCount(), g.EdgeCount(), false)
	return nil
}
