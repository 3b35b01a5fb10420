package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRequiresPackage(t *testing.T) {
	m := &Manifest{Patterns: []Pattern{{Name: "digit", Source: "[#digit]"}}}
	if err := m.Validate(); err == nil {
		t.Fatal("want error for missing package")
	}
}

func TestValidateRequiresAtLeastOnePattern(t *testing.T) {
	m := &Manifest{Package: "patterns"}
	if err := m.Validate(); err == nil {
		t.Fatal("want error for zero patterns")
	}
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	m := &Manifest{Package: "patterns", Patterns: []Pattern{
		{Name: "digit", Source: "[#digit]"},
		{Name: "digit", Source: "[#d]"},
	}}
	if err := m.Validate(); err == nil {
		t.Fatal("want error for duplicate pattern name")
	}
}

func TestValidateRejectsMissingSource(t *testing.T) {
	m := &Manifest{Package: "patterns", Patterns: []Pattern{{Name: "digit"}}}
	if err := m.Validate(); err == nil {
		t.Fatal("want error for missing source")
	}
}

func TestValidateAcceptsWellFormedManifest(t *testing.T) {
	m := &Manifest{Package: "patterns", Patterns: []Pattern{
		{Name: "digit", Source: "[#digit]"},
		{Name: "year", Source: "[capture:year 4 #digit]", Doc: "matches a four-digit year"},
	}}
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadParsesAndValidatesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	content := `
package: patterns
flavor: ecmascript
patterns:
  - name: digit
    source: "[#digit]"
  - name: year
    source: "[capture:year 4 #digit]"
    doc: four digit year
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Package != "patterns" || m.Flavor != "ecmascript" || len(m.Patterns) != 2 {
		t.Fatalf("unexpected manifest: %#v", m)
	}
}

func TestLoadRejectsInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte("package: patterns\npatterns: []\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("want error for empty patterns list")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestGenerateProducesVariablePerPattern(t *testing.T) {
	m := &Manifest{Package: "patterns", Patterns: []Pattern{
		{Name: "digit", Source: "[#digit]"},
		{Name: "four-digit year", Source: "[capture:year 4 #digit]"},
	}}
	f, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	rendered := buf.String()
	for _, want := range []string{"Digit", "Four_digit_year", "regexp.MustCompile"} {
		if !contains(rendered, want) {
			t.Errorf("generated source missing %q:\n%s", want, rendered)
		}
	}
}

func TestGeneratePropagatesCompileError(t *testing.T) {
	m := &Manifest{Package: "patterns", Patterns: []Pattern{
		{Name: "bad", Source: "[#nonexistent]"},
	}}
	if _, err := m.Generate(); err == nil {
		t.Fatal("want error from an unknown macro in a pattern source")
	}
}

func TestGenerateRejectsUnknownFlavor(t *testing.T) {
	m := &Manifest{Package: "patterns", Flavor: "bogus", Patterns: []Pattern{
		{Name: "digit", Source: "[#digit]"},
	}}
	if _, err := m.Generate(); err == nil {
		t.Fatal("want error for unknown flavor")
	}
}

func contains(haystack, needle string) bool {
	return len(needle) == 0 || (len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
