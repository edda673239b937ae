package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tracekit/tracekit/pkg/graphio"
	"github.com/tracekit/tracekit/pkg/ir"
)

// inspectCommand lists a graph's nodes, or browses them interactively.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "List the nodes of a graph with their defs and users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return err
			}

			if interactive {
				model := newNodeListModel(g)
				_, err := tea.NewProgram(model).Run()
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderNodeTable(g))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse nodes in a TUI")
	return cmd
}

// fmtArg renders an argument tree on one line: node references as %name,
// sequences in () or [], dicts in {}, slices as start:stop:step.
func fmtArg(a ir.Argument) string {
	switch v := a.(type) {
	case nil:
		return "nil"
	case *ir.Node:
		return "%" + v.Name()
	case ir.String:
		return fmt.Sprintf("%q", string(v))
	case ir.Tuple:
		return "(" + fmtArgs(v) + ")"
	case ir.List:
		return "[" + fmtArgs(v) + "]"
	case ir.Dict:
		var parts []string
		v.Range(func(key string, elem ir.Argument) bool {
			parts = append(parts, key+": "+fmtArg(elem))
			return true
		})
		return "{" + strings.Join(parts, ", ") + "}"
	case ir.Slice:
		return fmtArg(v.Start) + ":" + fmtArg(v.Stop) + ":" + fmtArg(v.Step)
	case ir.Tensor:
		return "tensor<" + v.Ref + ">"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func fmtArgs(args []ir.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmtArg(a)
	}
	return strings.Join(parts, ", ")
}

// fmtNodeLine renders one summary line for a node.
func fmtNodeLine(n *ir.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s[%s]", n.Name(), n.Op(), ir.TargetString(n.Target()))
	if len(n.Args()) > 0 {
		fmt.Fprintf(&b, "(%s)", fmtArgs(n.Args()))
	} else {
		b.WriteString("()")
	}
	if n.Kwargs().Len() > 0 {
		fmt.Fprintf(&b, " %s", fmtArg(n.Kwargs()))
	}
	return b.String()
}
