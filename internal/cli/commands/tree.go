package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/svkit/pkg/parser"
	"github.com/leapstack-labs/svkit/pkg/syntax"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tree <file>",
		Short:   "Print the syntax tree of a source file",
		Example: `  svkit tree rtl/foo_pkg.sv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := parser.Parse(string(src), args[0])
			if err != nil {
				return err
			}
			for _, d := range res.Diagnostics {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s:%s\n", args[0], d)
			}
			if res.Tree == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(empty)")
				return nil
			}
			return syntax.Fprint(cmd.OutOrStdout(), res.Tree)
		},
	}
}
