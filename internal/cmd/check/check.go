// Package check implements `kexp check`.
package check

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fatih/color"

	"github.com/kleenexp-go/kleenexp/internal/ast"
	"github.com/kleenexp-go/kleenexp/internal/cmd/cmdutil"
	"github.com/kleenexp-go/kleenexp/internal/diag"
	"github.com/kleenexp-go/kleenexp/internal/syntax"
)

// NewCmdCheck creates the `kexp check` command: it validates a KE pattern
// (parse + lower, no emission) and reports success or a diagnostic without
// printing the compiled regex.
func NewCmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <ke-source>",
		Short: "Validate a KE pattern without emitting a regex",
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
	if err == nil {
		_, err = ast.LowerWithLogger(nodes, opts, source, cmdutil.Logger(cmd))
	}
	if err != nil {
		if de, ok := err.(*diag.Error); ok && !cmdutil.NoColor(cmd) {
			diag.Render(os.Stderr, de.WithSource(source))
		}
		return err
	}

	if cmdutil.NoColor(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("ok"))
	}
	return nil
}
