package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestgraph/pkg/buildinfo"
	"github.com/matzehuels/nestgraph/pkg/cache"
	"github.com/matzehuels/nestgraph/pkg/network"
	"github.com/matzehuels/nestgraph/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

var validFormats = map[string]bool{formatDOT: true, formatSVG: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path; "-" writes to stdout
	format  string // "dot" or "svg"
	rankdir string // Graphviz layout direction
	params  bool   // show visible parameters in node labels
	noCache bool   // bypass the render cache
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG, rankdir: "LR"}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a network as a node-link diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be dot or svg)", opts.format)
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().StringVar(&opts.rankdir, "rankdir", opts.rankdir, "layout direction: LR, TB, RL, BT")
	cmd.Flags().BoolVar(&opts.params, "params", false, "show visible parameters in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(formatSVG, formatDOT))
	_ = cmd.RegisterFlagCompletionFunc("rankdir", completeValues("LR", "TB", "RL", "BT"))

	return cmd
}

// outputPath derives the output path from the input when none is given.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	net, err := c.loadNetwork(input)
	if err != nil {
		return err
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	data, cached, err := renderCached(ctx, store, net, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(net.NodeCount(), net.ConnectionCount(), cached)
	printFile(path)
	return nil
}

// renderCached returns the diagram for net, reusing a cached render of the
// same db serialization and options when one exists.
func renderCached(ctx context.Context, store cache.Cache, net *network.Network, opts *renderOpts) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	hash, err := cache.NetworkHash(net)
	if err != nil {
		return nil, false, err
	}
	// Renders from another release may differ for the same input.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	key := keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:  opts.format,
		Rankdir: opts.rankdir,
		Params:  opts.params,
	})

	if data, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("cache read failed", "err", err)
	} else if ok {
		logger.Debug("render cache hit", "key", key)
		return data, true, nil
	}

	data, err := renderNetwork(ctx, net, opts)
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
	return data, false, nil
}

func renderNetwork(ctx context.Context, net *network.Network, opts *renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(net, nodelink.Options{Params: opts.params, Rankdir: opts.rankdir})
	if opts.format == formatDOT {
		return []byte(dot), nil
	}
	return nodelink.RenderSVG(ctx, dot)
}
