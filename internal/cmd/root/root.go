// Package root provides the root command for the kexp CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/kleenexp-go/kleenexp/internal/cmd/check"
	"github.com/kleenexp-go/kleenexp/internal/cmd/compile"
	"github.com/kleenexp-go/kleenexp/internal/cmd/explain"
)

// NewCmdRoot creates the root command for kexp.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kexp",
		Short: "Compile Kleene Expressions to a target regex flavor",
		Long: `kexp translates Kleene Expression (KE) source into a regex string
accepted by a host regex engine. It never executes the resulting pattern —
compile, check, and explain are all pure source-to-source operations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("flavor", "pcre", "target flavor: pcre, ecmascript")
	cmd.PersistentFlags().Bool("multiline", false, "caller will run the pattern with the engine's multiline flag set")
	cmd.PersistentFlags().Bool("unicode", false, "use Unicode property classes for #letter/#lowercase/#uppercase")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostics")
	cmd.PersistentFlags().Bool("debug", false, "narrate macro expansion and folding decisions to stderr")

	cmd.AddCommand(compile.NewCmdCompile())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(explain.NewCmdExplain())

	return cmd
}
