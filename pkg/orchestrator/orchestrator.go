package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-stylegen/pkg/compiler"
	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/defaults"
	"github.com/goliatone/go-stylegen/pkg/descriptor"
	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/render"
	"github.com/goliatone/go-stylegen/pkg/stylesheet"
)

const defaultRendererName = render.NameCSS

// TokensMapping is the mapping name WithTheme registers.
const TokensMapping = "tokens"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLogger sets the logger passed down to the compiler.
func WithLogger(log *zap.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// WithPolicy selects the declaration policy used by the compiler.
func WithPolicy(policy declaration.Policy) Option {
	return func(o *Orchestrator) {
		o.policy = policy
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithMappings supplies the registry descriptor files resolve mapping names
// against.
func WithMappings(registry *mapping.Registry) Option {
	return func(o *Orchestrator) {
		o.mappings = registry
	}
}

// WithTheme exposes the manifest's design tokens to descriptors as the
// "tokens" mapping.
func WithTheme(manifest *theme.Manifest) Option {
	return func(o *Orchestrator) {
		o.theme = manifest
	}
}

// WithTransformer registers a Transformer that rewrites attribute bags before
// they are compiled.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators run against every loaded module, after
// the field defaults.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithModulesFS supplies an fs.FS holding module descriptor documents. Pass
// nil to disable the bundled modules.
func WithModulesFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.modulesFS = fsys
		o.modulesSpecified = true
	}
}

// WithModules registers already-built modules, taking precedence over
// descriptors with the same name.
func WithModules(modules ...model.Module) Option {
	return func(o *Orchestrator) {
		o.extra = append(o.extra, modules...)
	}
}

// Orchestrator coordinates the pipeline from attribute bag to rendered CSS.
// It applies sensible defaults (bundled modules, css renderer, lenient policy)
// while remaining open to dependency injection.
type Orchestrator struct {
	log              *zap.Logger
	policy           declaration.Policy
	compiler         *compiler.Compiler
	registry         *render.Registry
	defaultRenderer  string
	mappings         *mapping.Registry
	theme            *theme.Manifest
	decorators       []model.Decorator
	modulesFS        fs.FS
	modulesSpecified bool
	extra            []model.Module
	modules          map[string]model.Module
	transformer      Transformer
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		log:             zap.NewNop(),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one module instance to compile.
type Request struct {
	// Module names the descriptor to compile.
	Module string

	// Slug is the render slug the rules are scoped to; it replaces the
	// order-class placeholder in selectors. Defaults to "<module>_0".
	Slug string

	// Attributes is the module instance's attribute bag. It is copied before
	// transformers run.
	Attributes model.Attributes

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Sheet lets several requests share one render pass. When nil a fresh sheet
	// is used for the request.
	Sheet *stylesheet.Sheet
}

// Err reports a configuration error found while applying defaults.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Modules returns the names of the modules available to requests, sorted.
func (o *Orchestrator) Modules() []string {
	names := make([]string, 0, len(o.modules))
	for name := range o.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module returns the named module definition.
func (o *Orchestrator) Module(name string) (model.Module, bool) {
	module, ok := o.modules[strings.TrimSpace(name)]
	return module, ok
}

// Compile resolves the request into the rules flushed from its sheet.
func (o *Orchestrator) Compile(ctx context.Context, req Request) ([]model.StyleRule, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Module) == "" {
		return nil, errors.New("orchestrator: module name is required")
	}

	module, ok := o.Module(req.Module)
	if !ok {
		return nil, fmt.Errorf("orchestrator: module %q not found", req.Module)
	}

	bag := make(model.Attributes, len(req.Attributes))
	for key, value := range req.Attributes {
		bag[key] = value
	}
	if err := o.applyTransformer(ctx, module, bag); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = DefaultSlug(module.Name, 0)
	}
	sheet := req.Sheet
	if sheet == nil {
		sheet = stylesheet.New()
	}

	o.compiler.CompileModule(sheet, slug, module, bag)
	return sheet.Flush(slug), nil
}

// Generate compiles the request and renders the rules with the named
// renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	rules, err := o.Compile(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = DefaultSlug(req.Module, 0)
	}
	output, err := renderer.Render(ctx, slug, rules)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer resolves a renderer by name, falling back to the default.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

// DefaultSlug builds the render slug of the index-th instance of a module.
func DefaultSlug(module string, index int) string {
	return fmt.Sprintf("%s_%d", strings.TrimSpace(module), index)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, module model.Module, bag model.Attributes) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, module, bag); err != nil {
		return fmt.Errorf("orchestrator: transform attributes: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	o.compiler = compiler.New(compiler.WithLogger(o.log), compiler.WithPolicy(o.policy))

	if o.registry == nil {
		registry, err := render.NewDefaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			registry = render.NewRegistry()
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if o.theme != nil {
		if o.mappings == nil {
			o.mappings = mapping.NewRegistry()
		}
		if err := o.mappings.Register(TokensMapping, mapping.Tokens(o.theme)); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: theme tokens: %w", err)
			return
		}
	}

	o.loadModules()
}

func (o *Orchestrator) loadModules() {
	o.modules = make(map[string]model.Module)

	if !o.modulesSpecified && o.modulesFS == nil {
		o.modulesFS = descriptor.EmbeddedFS()
	}
	if o.modulesFS != nil {
		decorators := append([]model.Decorator{defaults.NewRegistry()}, o.decorators...)
		store, err := descriptor.LoadFS(o.modulesFS, o.mappings, decorators...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load modules: %w", err)
			return
		}
		for _, name := range store.Names() {
			module, _ := store.Module(name)
			o.modules[name] = module
		}
	}

	for _, module := range o.extra {
		name := strings.TrimSpace(module.Name)
		if name == "" {
			o.initialiseErr = errors.New("orchestrator: module name is required")
			return
		}
		o.modules[name] = module
	}
}
