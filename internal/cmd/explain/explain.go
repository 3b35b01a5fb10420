// Package explain implements `kexp explain`.
package explain

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kleenexp-go/kleenexp/internal/ast"
	"github.com/kleenexp-go/kleenexp/internal/cmd/cmdutil"
	"github.com/kleenexp-go/kleenexp/internal/diag"
	"github.com/kleenexp-go/kleenexp/internal/syntax"
)

// NewCmdExplain creates the `kexp explain` command: it prints the
// normalized AST (spec §3) a KE pattern lowers to, for debugging macro
// expansion and operator folding without reading emitted regex syntax.
func NewCmdExplain() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <ke-source>",
		Short: "Print the normalized AST a KE pattern lowers to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}
	return cmd
}

func run(cmd *cobra.Command, source string) error {
	opts, err := cmdutil.OptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	nodes, err := syntax.Parse(source)
	var tree ast.Node
	if err == nil {
		tree, err = ast.LowerWithLogger(nodes, opts, source, cmdutil.Logger(cmd))
	}
	if err != nil {
		if de, ok := err.(*diag.Error); ok && !cmdutil.NoColor(cmd) {
			diag.Render(os.Stderr, de.WithSource(source))
		}
		return err
	}

	var sb strings.Builder
	describe(&sb, tree, 0)
	fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return nil
}

func describe(sb *strings.Builder, n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch x := n.(type) {
	case *ast.Literal:
		fmt.Fprintf(sb, "%sLiteral %q\n", indent, x.Text)
	case *ast.Concat:
		fmt.Fprintf(sb, "%sConcat\n", indent)
		for _, c := range x.Children {
			describe(sb, c, depth+1)
		}
	case *ast.Alt:
		fmt.Fprintf(sb, "%sAlt\n", indent)
		for _, c := range x.Children {
			describe(sb, c, depth+1)
		}
	case *ast.Repeat:
		bound := fmt.Sprintf("%d,", x.Min)
		if !x.Unbounded {
			bound = fmt.Sprintf("%d,%d", x.Min, x.Max)
		}
		fmt.Fprintf(sb, "%sRepeat {%s}\n", indent, bound)
		describe(sb, x.Child, depth+1)
	case *ast.Capture:
		if x.Name == "" {
			fmt.Fprintf(sb, "%sCapture\n", indent)
		} else {
			fmt.Fprintf(sb, "%sCapture name=%s\n", indent, x.Name)
		}
		describe(sb, x.Child, depth+1)
	case *ast.Negation:
		fmt.Fprintf(sb, "%sNegation\n", indent)
		describe(sb, x.Child, depth+1)
	case *ast.CharClass:
		fmt.Fprintf(sb, "%sCharClass negated=%v items=%d\n", indent, x.Negated, len(x.Items))
	case *ast.Anchor:
		fmt.Fprintf(sb, "%sAnchor %v\n", indent, x.Kind)
	case *ast.Raw:
		fmt.Fprintf(sb, "%sRaw %q\n", indent, x.Fragment)
	case *ast.Flag:
		fmt.Fprintf(sb, "%sFlag case_insensitive=%v\n", indent, x.CaseInsensitive)
		describe(sb, x.Child, depth+1)
	default:
		fmt.Fprintf(sb, "%s%T\n", indent, n)
	}
}
