// Package manifest defines the YAML input format for cmd/kexpgen: a named
// list of KE patterns to compile once at build time and emit as Go
// regexp.Regexp variables (spec §1's "thin convenience layer" is explicitly
// out of scope for the compiler itself, but a build-time codegen tool that
// calls the compiler and hands the result to the standard library's
// regexp package is not the compiler, and is fair game).
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pattern is one named KE source string to compile.
type Pattern struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Doc    string `yaml:"doc,omitempty"`
}

// Manifest is the top-level shape of a kexpgen input file.
type Manifest struct {
	Package   string    `yaml:"package"`
	Flavor    string    `yaml:"flavor,omitempty"`
	Multiline bool      `yaml:"multiline,omitempty"`
	Unicode   bool      `yaml:"unicode,omitempty"`
	Patterns  []Pattern `yaml:"patterns"`
}

// Load reads and parses a manifest file from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the manifest for obviously malformed entries.
func (m *Manifest) Validate() error {
	if m.Package == "" {
		return fmt.Errorf("package name is required")
	}
	if len(m.Patterns) == 0 {
		return fmt.Errorf("at least one pattern is required")
	}
	seen := make(map[string]bool, len(m.Patterns))
	for i, p := range m.Patterns {
		if p.Name == "" {
			return fmt.Errorf("pattern %d: name is required", i)
		}
		if p.Source == "" {
			return fmt.Errorf("pattern %q: source is required", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("pattern %q: duplicate name", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
