package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestgraph/pkg/netio"
	"github.com/matzehuels/nestgraph/pkg/network"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output string // output path; stdout when empty
	target string // "db" or "simulator"
	format string // "json" or "yaml" for stdout; files use their extension
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{format: string(netio.FormatJSON)}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Clean a network description and emit it for storage or simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.target, "target", "t", string(network.TargetDB), "serialization target: db, simulator")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "stdout format: json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("target", completeValues(string(network.TargetDB), string(network.TargetSimulator)))
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(string(netio.FormatJSON), string(netio.FormatYAML)))

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, input string, opts convertOpts) error {
	logger := loggerFromContext(cmd.Context())
	target, err := network.ParseTarget(opts.target)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	net, err := c.loadNetwork(input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d nodes, %d connections", net.NodeCount(), net.ConnectionCount()))

	if opts.output == "" {
		return netio.WriteNetwork(net, cmd.OutOrStdout(), target, netio.Format(opts.format))
	}
	if err := netio.ExportNetwork(net, opts.output, target); err != nil {
		return err
	}
	if _, err := os.Stat(opts.output); err == nil {
		printSuccess("Wrote %s network", target)
		printFile(opts.output)
	}
	return nil
}
