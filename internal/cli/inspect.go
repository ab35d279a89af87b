package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestgraph/pkg/network"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show nodes, their targets and what recorders can record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := c.loadNetwork(args[0])
			if err != nil {
				return err
			}
			writeTable(cmd.OutOrStdout(),
				[]string{"#", "model", "type", "n", "targets", "records", "recordables", "record from"},
				inspectRows(net))
			printStats(net.NodeCount(), net.ConnectionCount(), false)
			for _, p := range net.Problems() {
				printWarning("%v", p)
			}
			return nil
		},
	}
}

func inspectRows(net *network.Network) [][]string {
	rows := make([][]string, 0, net.NodeCount())
	for _, n := range net.Nodes() {
		et := n.ElementType()
		if et == "" {
			et = "?"
		}
		rows = append(rows, []string{
			strconv.Itoa(n.Index()),
			n.ModelID(),
			et,
			strconv.Itoa(n.Size()),
			joinIndices(n.Targets()),
			joinIndices(n.Recorded()),
			strings.Join(n.Recordables(), ", "),
			strings.Join(n.RecordFrom(), ", "),
		})
	}
	return rows
}

func joinIndices(nodes []*network.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = strconv.Itoa(n.Index())
	}
	return strings.Join(parts, ", ")
}
