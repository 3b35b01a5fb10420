// Package compile implements `kexp compile`.
package compile

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kleenexp-go/kleenexp/internal/cmd/cmdutil"
	"github.com/kleenexp-go/kleenexp/internal/ast"
	"github.com/kleenexp-go/kleenexp/internal/diag"
	"github.com/kleenexp-go/kleenexp/internal/emit"
	"github.com/kleenexp-go/kleenexp/internal/syntax"
)

// NewCmdCompile creates the `kexp compile` command.
func NewCmdCompile() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <ke-source>",
		Short: "Compile a KE pattern to a regex string",
		Example: `  kexp compile "[#digit]"
  kexp compile --flavor=ecmascript "[capture:year 4 #digit]"`,
		Args: cobra.ExactArgs(1),
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
	if err != nil {
		return render(err, source, cmdutil.NoColor(cmd))
	}
	tree, err := ast.LowerWithLogger(nodes, opts, source, cmdutil.Logger(cmd))
	if err != nil {
		return render(err, source, cmdutil.NoColor(cmd))
	}
	out, err := emit.Emit(tree, opts)
	if err != nil {
		return render(err, source, cmdutil.NoColor(cmd))
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func render(err error, source string, noColor bool) error {
	if de, ok := err.(*diag.Error); ok && !noColor {
		diag.Render(os.Stderr, de.WithSource(source))
		return de
	}
	return err
}
