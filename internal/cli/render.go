package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracekit/tracekit/pkg/cache"
	"github.com/tracekit/tracekit/pkg/graphio"
	"github.com/tracekit/tracekit/pkg/ir/transform"
	"github.com/tracekit/tracekit/pkg/render"
)

// renderCommand draws a serialized graph via Graphviz, with a lookaside
// cache keyed by the hash of the graph file.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		dce      bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a graph as DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			format, detailed = resolveRenderOptions(cfg.Render, format, detailed,
				cmd.Flags().Changed("detailed"))
			switch format {
			case "dot", "svg", "png":
			default:
				return fmt.Errorf("unsupported format %q (want dot, svg, or png)", format)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			g, err := graphio.ReadGraph(bytes.NewReader(data))
			if err != nil {
				return err
			}

			if dce {
				removed := transform.EliminateDead(g)
				logger.Debug("dead node elimination", "removed", removed)
			}

			store, err := newCache(ctx, cfg.Cache, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			key := cache.ArtifactKey(cache.Hash(data), cacheKeySuffix(format, detailed, dce))
			if out, hit, err := store.Get(ctx, key); err == nil && hit {
				logger.Debug("cache hit", "key", key)
				return writeArtifact(output, out)
			}

			p := newProgress(logger)
			dot := render.ToDOT(g, render.Options{Detailed: detailed})
			var out []byte
			switch format {
			case "dot":
				out = []byte(dot)
			case "svg":
				if out, err = render.RenderSVG(dot); err != nil {
					return err
				}
			case "png":
				if out, err = render.RenderPNG(dot); err != nil {
					return err
				}
			}
			p.done(fmt.Sprintf("Rendered %d nodes to %s", g.Len(), format))

			if err := store.Set(ctx, key, out, cacheTTL(cfg.Cache)); err != nil {
				logger.Debug("cache store failed", "err", err)
			}
			return writeArtifact(output, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, or png (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include op tags and targets in node labels")
	cmd.Flags().BoolVar(&dce, "dce", false, "eliminate dead nodes before rendering")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")
	return cmd
}

// resolveRenderOptions merges config defaults into flag values the user
// left unset. An explicit --detailed=false overrides a config default of
// true, so detailedSet must come from the flag set, not the value.
func resolveRenderOptions(cfg RenderConfig, format string, detailed, detailedSet bool) (string, bool) {
	if format == "" {
		format = cfg.Format
	}
	if !detailedSet {
		detailed = cfg.Detailed
	}
	return format, detailed
}

// cacheKeySuffix folds the render options into the cache key so option
// changes don't serve stale artifacts.
func cacheKeySuffix(format string, detailed, dce bool) string {
	return fmt.Sprintf("%s:d%t:x%t", format, detailed, dce)
}

func writeArtifact(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
