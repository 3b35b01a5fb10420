// Command kexpgen reads a manifest of named KE patterns and writes a Go
// source file declaring one compiled *regexp.Regexp variable per pattern,
// the way the teacher's own command-line tools generate matcher code at
// build time instead of compiling patterns at program startup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kleenexp-go/kleenexp/internal/manifest"
)

var (
	manifestPath = flag.String("manifest", "", "Path to the kexpgen YAML manifest (required)")
	outputPath   = flag.String("out", "", "Path to write the generated Go source file (required)")
)

func main() {
	flag.Parse()

	if *manifestPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "kexpgen: -manifest and -out are required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(*manifestPath, *outputPath); err != nil {
		fmt.Fprintln(os.Stderr, "kexpgen:", err)
		os.Exit(1)
	}
}

func run(manifestPath, outputPath string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	f, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if err := f.Save(outputPath); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
