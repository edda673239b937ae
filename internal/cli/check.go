package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracekit/tracekit/pkg/graphio"
	"github.com/tracekit/tracekit/pkg/ir"
)

// checkCommand validates a serialized graph's structural invariants.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <graph.json>",
		Short: "Validate a graph's sequence links and def/use bookkeeping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			if err := ir.Validate(g); err != nil {
				return fmt.Errorf("invalid graph: %w", err)
			}

			logger.Info("graph is valid", "nodes", g.Len(), "id", g.ID())
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d nodes\n", g.Len())
			return nil
		},
	}
}
