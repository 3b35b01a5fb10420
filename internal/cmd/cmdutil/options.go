// Package cmdutil holds flag-parsing helpers shared by kexp's subcommands.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kleenexp-go/kleenexp/internal/diag"
	"github.com/kleenexp-go/kleenexp/internal/option"
)

// OptionsFromFlags builds compiler Options from the persistent flags
// registered on the root command.
func OptionsFromFlags(cmd *cobra.Command) (option.Options, error) {
	flavorName, _ := cmd.Flags().GetString("flavor")
	multiline, _ := cmd.Flags().GetBool("multiline")
	unicode, _ := cmd.Flags().GetBool("unicode")

	var flavor option.Flavor
	switch flavorName {
	case "pcre", "":
		flavor = option.PCRE
	case "ecmascript":
		flavor = option.ECMAScript
	default:
		return option.Options{}, fmt.Errorf("unknown flavor %q (want pcre or ecmascript)", flavorName)
	}

	opts := option.Options{Flavor: flavor, Multiline: multiline, Unicode: unicode}.WithDefaults()
	return opts, opts.Validate()
}

// NoColor reports whether colorized output was disabled on the command line.
func NoColor(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("no-color")
	return v
}

// Logger builds a diag.Logger narrating to the command's stderr, enabled by
// the --debug persistent flag.
func Logger(cmd *cobra.Command) *diag.Logger {
	enabled, _ := cmd.Flags().GetBool("debug")
	l := diag.NewLogger(enabled)
	l.SetOutput(cmd.ErrOrStderr())
	return l
}
