// Package bundle runs one generation: discover the resource tree once,
// plan keys, ask the staleness oracle, and regenerate the artifact pair
// only when it is stale.
package bundle

import (
	"fmt"
	"io"
	"log/slog"

	"resource-bundler/internal/catalog"
	"resource-bundler/internal/discover"
	"resource-bundler/internal/gen"
	"resource-bundler/internal/plan"
	"resource-bundler/internal/stale"
)

// Options configures a Bundler.
type Options struct {
	// Root is the resource root directory.
	Root      string
	Discover  discover.Options
	Plan      plan.Config
	Generator gen.GeneratorConfig
	Oracle    stale.Options
	// Logger receives progress at debug level and diagnostics at their
	// own level. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Result describes a finished run.
type Result struct {
	Plan     *plan.Plan
	Decision stale.Decision
	// Generated is true when the artifact pair was rewritten.
	Generated bool
}

// Bundler ties discovery, planning, staleness and generation together.
type Bundler struct {
	opts      Options
	generator *gen.Generator
	oracle    *stale.Oracle
	logger    *slog.Logger
}

// New creates a Bundler. The planner's symbol prefix always follows the
// generator target.
func New(opts Options) (*Bundler, error) {
	generator, err := gen.NewGenerator(opts.Generator)
	if err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}

	opts.Plan.SymbolPrefix = opts.Generator.Target.SymbolPrefix()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Bundler{
		opts:      opts,
		generator: generator,
		oracle:    stale.NewOracle(opts.Oracle),
		logger:    logger,
	}, nil
}

// GeneratorConfig returns the validated generator settings in use.
func (b *Bundler) GeneratorConfig() gen.GeneratorConfig {
	return b.generator.Config()
}

// Plan discovers the resource tree and assigns keys without touching any
// output.
func (b *Bundler) Plan() (*plan.Plan, error) {
	resources, err := discover.Discover(b.opts.Root, b.opts.Discover)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("discovered resources", slog.String("root", b.opts.Root), slog.Int("count", len(resources)))

	p, err := plan.NewResolver(b.opts.Plan).Resolve(resources)
	if p != nil {
		p.Diagnostics.Log(b.logger)
	}

	if err != nil {
		return nil, err
	}

	return p, nil
}

// Catalog plans the tree and indexes it by key.
func (b *Bundler) Catalog() (*catalog.Catalog, error) {
	p, err := b.Plan()
	if err != nil {
		return nil, err
	}

	return catalog.New(p), nil
}

// Run regenerates pair from the resource root when the oracle reports it
// stale. Configuration and collision errors are returned before any output
// is touched; a failed generation leaves the previous pair in place.
func (b *Bundler) Run(pair gen.ArtifactPair) (*Result, error) {
	p, err := b.Plan()
	if err != nil {
		return nil, err
	}

	decision, err := b.oracle.NeedsRegeneration(pair.DeclarationPath, pair.DefinitionPath, p.Resources())
	if err != nil {
		return nil, fmt.Errorf("checking staleness: %w", err)
	}

	result := &Result{Plan: p, Decision: decision}

	if !decision.Regenerate {
		b.logger.Debug("artifacts up to date, skipping generation",
			slog.String("declaration", pair.DeclarationPath),
			slog.String("definition", pair.DefinitionPath))

		return result, nil
	}

	b.logger.Debug("regenerating artifacts",
		slog.String("reason", decision.Reason.String()),
		slog.String("trigger", decision.Trigger),
		slog.Int("resources", len(p.Entries)))

	if err := b.generator.Generate(pair, p); err != nil {
		return nil, err
	}

	result.Generated = true

	b.logger.Debug("generated artifacts",
		slog.String("declaration", pair.DeclarationPath),
		slog.String("definition", pair.DefinitionPath),
		slog.String("target", b.generator.Config().Target.String()),
		slog.String("signedness", b.generator.Config().Signedness.String()))

	return result, nil
}
