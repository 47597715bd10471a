package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terracarta/terraviz/pkg/cache"
	"github.com/terracarta/terraviz/pkg/config"
	"github.com/terracarta/terraviz/pkg/discover"
	"github.com/terracarta/terraviz/pkg/errors"
	"github.com/terracarta/terraviz/pkg/graph"
	gio "github.com/terracarta/terraviz/pkg/io"
	"github.com/terracarta/terraviz/pkg/jsonval"
	"github.com/terracarta/terraviz/pkg/render"
)

// buildFlags are the flags shared by every document command.
type buildFlags struct {
	output  string
	format  string
	noCache bool
}

func addBuildFlags(cmd *cobra.Command, f *buildFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "svg", "output format: svg, png, dot, json")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
}

// validateFormat checks an output format flag value.
func validateFormat(format string) error {
	switch format {
	case "svg", "png", "dot", "json":
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"unknown format %q (want svg, png, dot, or json)", format)
}

// outputPath derives the output file: an explicit -o wins, otherwise the
// input's base name with the format's extension, in the working dir.
func outputPath(input, output, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "." + format
}

// newCacheBackend selects the cache per config, honouring --no-cache.
func newCacheBackend(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	default:
		return cache.NewFileCache(cfg.Cache.Dir)
	}
}

func renderOptions(cfg config.Config) render.Options {
	return render.Options{
		Scale:      cfg.Render.Scale,
		NodeSize:   cfg.Render.NodeSize,
		FlowColor:  cfg.Render.FlowColor,
		EdgeColor:  cfg.Render.EdgeColor,
		WidthScale: cfg.Render.WidthScale,
	}
}

// runBuild is the pipeline behind the poly, river, and town commands:
// read, discover, assemble, render, cache.
func runBuild(cmd *cobra.Command, mode discover.DocKind, input string, flags buildFlags) error {
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

	key := cache.RenderKey(raw, mode.String(), flags.format, opts)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		logger.Debug("artifact served from cache", "key", key)
		if err := os.WriteFile(out, data, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
		}
		printSuccess("Rendered %s document", mode)
		printFile(out)
		printStats(0, 0, true)
		return nil
	}

	doc, err := jsonval.Decode(bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnrecognizedDocument, err, "parse %s", input)
	}

	var g *graph.Graph
	prog := newProgress(logger)
	err = runAssemble(ctx, fmt.Sprintf("Assembling %s graph...", mode), func(report func(int)) error {
		b := graph.NewBuilder()
		count := 0
		for ent, err := range discoverMode(doc, mode) {
			if err != nil {
				return err
			}
			if err := b.Add(ent); err != nil {
				return err
			}
			if count++; count%64 == 0 {
				report(count)
			}
		}
		report(count)

		var err error
		g, err = b.Build()
		return err
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Assembled %d nodes, %d edges", g.NodeCount(), g.EdgeCount()))

	for _, d := range g.Diagnostics() {
		logger.Warn("dropped dangling edge", "from", d.From, "to", d.To, "missing", d.Missing)
	}
	if n := len(g.Diagnostics()); n > 0 {
		printWarning("%d dangling reference(s) dropped", n)
	}

	return writeArtifact(cmd.Context(), g, flags.format, opts, out, func(data []byte) {
		if err := store.Set(ctx, key, data, cfg.Cache.TTL.Std()); err != nil {
			logger.Debug("cache store failed", "err", err)
		}
	})
}

// discoverMode returns the discovery sequence for an explicitly selected
// mode. Commands pick the mode; DetectKind is only for callers without
// that context.
func discoverMode(doc jsonval.Value, mode discover.DocKind) discover.Seq {
	switch mode {
	case discover.DocRiver:
		return discover.River(doc)
	case discover.DocTown:
		return discover.Town(doc)
	}
	return discover.Nested(doc)
}

// writeArtifact produces the requested format, writes it to out, and
// hands the bytes to store for caching.
func writeArtifact(ctx context.Context, g *graph.Graph, format string, opts render.Options, out string, store func([]byte)) error {
	data, err := produceArtifact(ctx, g, format, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
	}
	store(data)

	printSuccess("Rendered %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	printFile(out)
	printStats(g.NodeCount(), g.EdgeCount(), false)
	return nil
}

func produceArtifact(ctx context.Context, g *graph.Graph, format string, opts render.Options) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(render.ToDOT(g, opts)), nil
	case "svg":
		return render.SVG(ctx, render.ToDOT(g, opts))
	case "png":
		return render.PNG(ctx, render.ToDOT(g, opts))
	case "json":
		var buf bytes.Buffer
		if err := gio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}
