// Command kexp is a command-line front end over the KleenExp compiler:
// it translates KE source into a target-flavor regex string and renders
// compile errors with source context (spec §1 notes a CLI front-end as an
// external collaborator to the compiler itself; this is that collaborator).
package main

import (
	"os"

	"github.com/kleenexp-go/kleenexp/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
