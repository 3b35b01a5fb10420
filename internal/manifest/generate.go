package manifest

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/kleenexp-go/kleenexp/internal/codegen"
	"github.com/kleenexp-go/kleenexp/pkg/kleenexp"
)

// flavorOption resolves the manifest's flavor string to kleenexp.Options,
// defaulting to PCRE the same way kleenexp.Options' zero value does.
func (m *Manifest) flavorOption() (kleenexp.Options, error) {
	opts := kleenexp.Options{Multiline: m.Multiline, Unicode: m.Unicode}
	switch m.Flavor {
	case "", "pcre":
		opts.Flavor = kleenexp.PCRE
	case "ecmascript":
		opts.Flavor = kleenexp.ECMAScript
	default:
		return opts, fmt.Errorf("unknown flavor %q", m.Flavor)
	}
	return opts, nil
}

// Generate compiles every pattern in m and renders a Go source file
// declaring one *regexp.Regexp package-level variable per pattern, named
// after codegen.SanitizeGoIdentifier(pattern.Name).
func (m *Manifest) Generate() (*jen.File, error) {
	opts, err := m.flavorOption()
	if err != nil {
		return nil, err
	}

	f := jen.NewFile(m.Package)
	f.HeaderComment("Code generated by kexpgen. DO NOT EDIT.")
	f.ImportName("regexp", "regexp")

	for _, p := range m.Patterns {
		regex, err := kleenexp.Compile(p.Source, opts)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.Name, err)
		}
		name := codegen.SanitizeGoIdentifier(p.Name)

		if p.Doc != "" {
			f.Comment(p.Doc)
		} else {
			f.Commentf("%s is compiled from the KE pattern %q.", name, p.Source)
		}
		f.Var().Id(name).Op("=").Qual("regexp", "MustCompile").Call(jen.Lit(regex))
	}

	return f, nil
}
