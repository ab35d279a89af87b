package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestgraph/pkg/model"
)

// modelsCommand creates the models command.
func (c *CLI) modelsCommand() *cobra.Command {
	var elementType string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the model catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.registry()
			if err != nil {
				return err
			}
			models := reg.List()
			if elementType != "" {
				models = reg.Filter(elementType)
			}
			if len(models) == 0 {
				printInfo("No models")
				return nil
			}
			writeTable(cmd.OutOrStdout(), []string{"id", "type", "base", "params", "recordables"}, modelRows(models))
			return nil
		},
	}

	cmd.Flags().StringVarP(&elementType, "type", "t", "", "only models of this element type (neuron, stimulator, recorder, synapse)")
	_ = cmd.RegisterFlagCompletionFunc("type", completeModelTypes)
	return cmd
}

func modelRows(models []*model.Model) [][]string {
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		base := ""
		if m.Base() != m.ID {
			base = m.Base()
		}
		rows = append(rows, []string{
			m.ID,
			m.ElementType,
			base,
			strconv.Itoa(len(m.Params)),
			strings.Join(m.Recordables, ", "),
		})
	}
	return rows
}
