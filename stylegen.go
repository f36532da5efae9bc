package stylegen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/orchestrator"
)

// Attributes is a module instance's attribute bag.
type Attributes = model.Attributes

// StyleRule is one compiled CSS rule.
type StyleRule = model.StyleRule

// Request describes one module instance to compile; alias exported via the
// root package for convenience.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateCSS compiles a module instance with the bundled modules and renders
// it with the named renderer ("css" when empty). It is the simplest entry
// point for callers that just want a stylesheet.
func GenerateCSS(ctx context.Context, module, slug string, attrs Attributes, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Module:     module,
		Slug:       slug,
		Attributes: attrs,
		Renderer:   rendererName,
	})
}

// CompileRules compiles a module instance into rules without rendering them.
func CompileRules(ctx context.Context, module, slug string, attrs Attributes, options ...orchestrator.Option) ([]StyleRule, error) {
	gen := orchestrator.New(options...)
	return gen.Compile(ctx, orchestrator.Request{
		Module:     module,
		Slug:       slug,
		Attributes: attrs,
	})
}

// WithStrictPolicy skips declarations whose values could break out of their
// rule instead of emitting them verbatim.
func WithStrictPolicy() orchestrator.Option {
	return orchestrator.WithPolicy(declaration.PolicyStrict)
}

// WithTheme lets descriptor fields resolve the manifest's design tokens
// through the "tokens" mapping.
func WithTheme(manifest *theme.Manifest) orchestrator.Option {
	return orchestrator.WithTheme(manifest)
}
