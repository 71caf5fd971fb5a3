package gen

import (
	"fmt"
	"go/token"
	"io"
	"path/filepath"
	"strings"

	"resource-bundler/internal/emit"
	"resource-bundler/internal/plan"
	"resource-bundler/internal/sanitize"
)

// ToolName appears in the banner of every generated file.
const ToolName = "resource-bundler"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Target is the language of the generated artifacts.
	Target TargetKind
	// Signedness is the element type of generated arrays.
	Signedness emit.Signedness
	// PackageName is the Go package of generated files (go target).
	PackageName string
	// ClassName is the generated class (cpp target).
	ClassName string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Target:      TargetGo,
		Signedness:  emit.Signed,
		PackageName: "res",
		ClassName:   "___res___",
	}
}

// Validate checks that the configuration can produce compilable output.
func (c GeneratorConfig) Validate() error {
	switch c.Target {
	case TargetGo:
		if !token.IsIdentifier(c.PackageName) || c.PackageName == "_" {
			return fmt.Errorf("invalid Go package name %q", c.PackageName)
		}
	case TargetCpp:
		if !sanitize.IsIdentifier(c.ClassName) || startsWithDigit(c.ClassName) {
			return fmt.Errorf("invalid class name %q", c.ClassName)
		}
	default:
		return fmt.Errorf("unsupported target %s", c.Target)
	}

	if c.Signedness != emit.Signed && c.Signedness != emit.Unsigned {
		return fmt.Errorf("unsupported signedness %s", c.Signedness)
	}

	return nil
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// Generator renders resource plans into artifact pairs.
type Generator struct {
	config GeneratorConfig
	target target
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{config: config}

	switch config.Target {
	case TargetCpp:
		g.target = cppTarget{}
	default:
		g.target = goTarget{}
	}

	return g, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() GeneratorConfig {
	return g.config
}

// Generate writes the declaration and definition units for p to pair,
// truncating and replacing any previous contents. Entries are emitted in
// plan order. On error neither output path is modified.
func (g *Generator) Generate(pair ArtifactPair, p *plan.Plan) error {
	if pair.DeclarationPath == "" || pair.DefinitionPath == "" {
		return fmt.Errorf("artifact pair needs both a declaration and a definition path")
	}

	if filepath.Clean(pair.DeclarationPath) == filepath.Clean(pair.DefinitionPath) {
		return fmt.Errorf("declaration and definition paths are the same: %s", pair.DeclarationPath)
	}

	prefix := g.config.Target.SymbolPrefix()
	for _, e := range p.Entries {
		if !strings.HasPrefix(e.Symbol, prefix) {
			return fmt.Errorf("entry %s has symbol %s, want prefix %s", e.Key, e.Symbol, prefix)
		}
	}

	u := g.buildUnit(pair, p)

	return writePair(pair,
		func(w io.Writer) error { return g.target.writeDeclaration(w, u) },
		func(w io.Writer) error { return g.target.writeDefinition(w, u) },
	)
}

// Render writes both units to the given writers without touching the
// filesystem outputs. Resources are still read from disk.
func (g *Generator) Render(decl, def io.Writer, pair ArtifactPair, p *plan.Plan) error {
	u := g.buildUnit(pair, p)

	if err := g.target.writeDeclaration(decl, u); err != nil {
		return err
	}

	return g.target.writeDefinition(def, u)
}

func (g *Generator) buildUnit(pair ArtifactPair, p *plan.Plan) *unit {
	u := &unit{
		Tool:       ToolName,
		Digest:     p.Digest(),
		Package:    g.config.PackageName,
		Class:      g.config.ClassName,
		Signedness: g.config.Signedness,
		Entries:    p.Entries,
	}

	switch g.config.Target {
	case TargetCpp:
		u.Elem = cppElem(g.config.Signedness)
		u.Guard = headerGuard(pair.DeclarationPath)
		u.Include = includePath(pair)
	default:
		u.Elem = goElem(g.config.Signedness)
	}

	return u
}

// headerGuard derives an include guard from the header file name,
// e.g. "_res.h" -> "____RES_H".
func headerGuard(declPath string) string {
	return "___" + strings.ToUpper(sanitize.Sanitize(filepath.Base(declPath)))
}

// includePath is the header as seen from the source file's directory.
func includePath(pair ArtifactPair) string {
	rel, err := filepath.Rel(filepath.Dir(pair.DefinitionPath), pair.DeclarationPath)
	if err != nil {
		return filepath.Base(pair.DeclarationPath)
	}

	return filepath.ToSlash(rel)
}
