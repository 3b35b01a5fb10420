// Package kleenexp is the public entry point of the compiler: it wires the
// lexer/parser, the macro resolver and lowering pass, and the flavor-aware
// emitter into a single Compile call (spec §2, §5). It does not execute the
// resulting pattern — Compile returns a plain string accepted by the host
// language's regex engine.
package kleenexp

import (
	"fmt"
	"sync"

	"github.com/kleenexp-go/kleenexp/internal/ast"
	"github.com/kleenexp-go/kleenexp/internal/emit"
	"github.com/kleenexp-go/kleenexp/internal/option"
	"github.com/kleenexp-go/kleenexp/internal/syntax"
)

// Flavor selects the target regex dialect.
type Flavor = option.Flavor

const (
	PCRE       = option.PCRE
	ECMAScript = option.ECMAScript
)

// Options configures a single Compile call (spec §6).
type Options struct {
	// Flavor selects the target regex dialect. Zero value is PCRE.
	Flavor Flavor

	// Multiline documents that the caller will run the compiled pattern
	// with the target engine's multiline flag already set. #start_line/
	// #end_line render as bare ^/$ regardless of this flag (spec §6's
	// table gives them the same entry in both columns); it's carried on
	// Options for shape-parity with that table and #start_string/
	// #end_string, which the table also permits to render the same way
	// (\A/\Z) in both modes — see internal/emit's anchor table.
	Multiline bool

	// Unicode selects Unicode property classes for #letter/#lowercase/
	// #uppercase where the flavor supports them, instead of ASCII ranges.
	Unicode bool

	// MaxExpansionDepth bounds macro/Def recursion. Zero means the
	// built-in default of 100 (spec §5).
	MaxExpansionDepth int
}

func (o Options) toInternal() option.Options {
	return option.Options{
		Flavor:            o.Flavor,
		Multiline:         o.Multiline,
		Unicode:           o.Unicode,
		MaxExpansionDepth: o.MaxExpansionDepth,
	}.WithDefaults()
}

// Validate checks o for internally-inconsistent settings.
func (o Options) Validate() error {
	return o.toInternal().Validate()
}

// Compile translates a KE source string into a regex string in the
// requested flavor. It never executes the resulting pattern.
func Compile(source string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("invalid options: %w", err)
	}
	internalOpts := opts.toInternal()

	nodes, err := syntax.Parse(source)
	if err != nil {
		return "", err
	}
	tree, err := ast.Lower(nodes, internalOpts, source)
	if err != nil {
		return "", err
	}
	out, err := emit.Emit(tree, internalOpts)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Re is an alias for Compile.
func Re(source string, opts Options) (string, error) {
	return Compile(source, opts)
}

// MustCompile is like Compile but panics on error, for use with constant KE
// source strings the way regexp.MustCompile is used with constant patterns.
func MustCompile(source string, opts Options) string {
	out, err := Compile(source, opts)
	if err != nil {
		panic("kleenexp: MustCompile: " + err.Error())
	}
	return out
}

// Cache memoizes Compile by (source, Options) pair. Compile itself keeps no
// state and does no caching (spec §5: "callers that wish to memoize should
// wrap the entry point") — Cache is that wrapper, grounded on the teacher's
// sync.Pool reuse pattern (internal/compiler/pool.go) adapted from pooling
// scratch buffers to memoizing whole compilations.
type Cache struct {
	mu sync.RWMutex
	m  map[cacheKey]cacheEntry
}

type cacheKey struct {
	source string
	opts   Options
}

type cacheEntry struct {
	regex string
	err   error
}

// NewCache returns an empty Cache ready to use.
func NewCache() *Cache {
	return &Cache{m: make(map[cacheKey]cacheEntry)}
}

// Compile returns the cached result for (source, opts), computing and
// storing it on first use.
func (c *Cache) Compile(source string, opts Options) (string, error) {
	key := cacheKey{source: source, opts: opts}

	c.mu.RLock()
	entry, ok := c.m[key]
	c.mu.RUnlock()
	if ok {
		return entry.regex, entry.err
	}

	regex, err := Compile(source, opts)

	c.mu.Lock()
	c.m[key] = cacheEntry{regex: regex, err: err}
	c.mu.Unlock()

	return regex, err
}
