package compiler

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-stylegen/pkg/attrs"
	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/hover"
	"github.com/goliatone/go-stylegen/pkg/iconoffset"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/responsive"
	"github.com/goliatone/go-stylegen/pkg/shorthand"
	"github.com/goliatone/go-stylegen/pkg/stylesheet"
	"github.com/goliatone/go-stylegen/pkg/units"
)

// OrderClassPlaceholder is replaced in selectors by the render slug's class.
const OrderClassPlaceholder = "%%order_class%%"

// Skip reasons reported in debug logs.
const (
	reasonIncomplete = "incomplete descriptor"
	reasonEmpty      = "empty value"
	reasonDefault    = "default value"
	reasonUnsafe     = "unsafe value"
	reasonTemplate   = "invalid template"
)

// Option customises the compiler configuration.
type Option func(*Compiler)

// WithLogger sets the logger used to report skipped fields. A nil logger is
// ignored.
func WithLogger(log *zap.Logger) Option {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// WithPolicy selects the declaration policy (lenient by default).
func WithPolicy(policy declaration.Policy) Option {
	return func(c *Compiler) {
		c.builder = declaration.New(policy)
	}
}

// Compiler turns field descriptors and attribute bags into StyleRules. It
// holds no per-render state and may be shared between render passes; the
// Sheet passed to the Compile methods is the only thing written to.
type Compiler struct {
	log     *zap.Logger
	builder declaration.Builder
}

// New constructs a Compiler applying any provided options.
func New(options ...Option) *Compiler {
	c := &Compiler{
		log:     zap.NewNop(),
		builder: declaration.New(declaration.PolicyLenient),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.log = c.log.Named("compiler")
	return c
}

// Policy reports the declaration policy in effect.
func (c *Compiler) Policy() declaration.Policy {
	return c.builder.Policy
}

// CompileModule compiles every field and icon offset of module, appending
// the rules to sheet under slug. The emitted rules are also returned.
func (c *Compiler) CompileModule(sheet *stylesheet.Sheet, slug string, module model.Module, bag model.Attributes) []model.StyleRule {
	var out []model.StyleRule
	for _, field := range module.Fields {
		out = append(out, c.CompileField(sheet, slug, field, bag)...)
	}
	for _, desc := range module.IconOffsets {
		out = append(out, c.CompileIconOffset(sheet, slug, desc, bag)...)
	}
	c.log.Debug("Compiled module",
		zap.String("module", module.Name),
		zap.String("slug", slug),
		zap.Int("rules", len(out)))
	return out
}

// CompileField compiles one field and appends the rules to sheet.
func (c *Compiler) CompileField(sheet *stylesheet.Sheet, slug string, field model.FieldDescriptor, bag model.Attributes) []model.StyleRule {
	rules := c.Field(slug, field, bag)
	sheet.AddRules(slug, rules...)
	return rules
}

// CompileIconOffset compiles one icon offset and appends the rules to sheet.
func (c *Compiler) CompileIconOffset(sheet *stylesheet.Sheet, slug string, desc model.IconOffsetDescriptor, bag model.Attributes) []model.StyleRule {
	rules := c.IconOffset(slug, desc, bag)
	sheet.AddRules(slug, rules...)
	return rules
}

// Field compiles one field without touching a sheet. Breakpoint rules come
// first in desktop, tablet, phone order, followed by the hover rule.
func (c *Compiler) Field(slug string, field model.FieldDescriptor, bag model.Attributes) []model.StyleRule {
	log := c.log.With(zap.String("slug", slug), zap.String("field", field.Name))
	if strings.TrimSpace(field.Name) == "" || strings.TrimSpace(field.CSSProperty) == "" || strings.TrimSpace(field.Selector) == "" {
		log.Debug("Skipping field", zap.String("reason", reasonIncomplete))
		return nil
	}

	pv := attrs.Property(bag, field.Name)
	valueTransform := c.valueTransform(field)
	res := responsive.ResolveWith(pv, valueTransform)

	if res.Mode == responsive.ModeSingle && isDefault(field, res.Value) {
		log.Debug("Skipping field", zap.String("reason", reasonDefault), zap.String("value", res.Value))
		res.Value = ""
	}

	selector := Selector(field.Selector, slug)
	scoped := res.Scoped(field.DesktopOnly)
	if len(scoped) == 0 {
		log.Debug("Skipping field", zap.String("reason", reasonEmpty), zap.String("mode", res.Mode.String()))
	}

	out := make([]model.StyleRule, 0, len(scoped)+1)
	for _, entry := range scoped {
		decl, err := c.declare(field, entry.Value)
		if err != nil {
			log.Debug("Skipping breakpoint",
				zap.String("reason", reasonUnsafe),
				zap.String("device", string(entry.Device)),
				zap.Error(err))
			continue
		}
		if decl == "" {
			continue
		}
		out = append(out, model.StyleRule{
			Selector:    selector,
			Declaration: decl,
			MediaQuery:  entry.MediaQuery,
		})
	}

	if rule := c.hoverRule(log, slug, field, pv); rule != nil {
		out = append(out, *rule)
	}
	return out
}

// IconOffset compiles one icon offset without touching a sheet.
func (c *Compiler) IconOffset(slug string, desc model.IconOffsetDescriptor, bag model.Attributes) []model.StyleRule {
	log := c.log.With(zap.String("slug", slug), zap.String("offset", desc.Name))
	if strings.TrimSpace(desc.CSSProperty) == "" || strings.TrimSpace(desc.Selector) == "" {
		log.Debug("Skipping icon offset", zap.String("reason", reasonIncomplete))
		return nil
	}

	values, err := iconoffset.Resolve(desc, bag)
	if err != nil {
		log.Warn("Skipping icon offset", zap.String("reason", reasonTemplate), zap.Error(err))
		return nil
	}

	selector := Selector(desc.Selector, slug)
	out := make([]model.StyleRule, 0, len(values))
	for _, entry := range values {
		decl, err := c.builder.Build(desc.CSSProperty, entry.Value, desc.Important)
		if err != nil {
			log.Debug("Skipping breakpoint", zap.String("reason", reasonUnsafe), zap.Error(err))
			continue
		}
		out = append(out, model.StyleRule{
			Selector:    selector,
			Declaration: decl,
			MediaQuery:  entry.MediaQuery,
		})
	}
	return out
}

// Selector substitutes the order-class placeholder with ".<slug>".
func Selector(selector, slug string) string {
	selector = strings.TrimSpace(selector)
	if slug == "" {
		return selector
	}
	return strings.ReplaceAll(selector, OrderClassPlaceholder, "."+slug)
}

func (c *Compiler) hoverRule(log *zap.Logger, slug string, field model.FieldDescriptor, pv model.PropertyValue) *model.StyleRule {
	if strings.TrimSpace(field.HoverSelector) == "" || pv.HoverValue == "" {
		return nil
	}

	opts := hover.Options{Builder: c.builder, Shorthand: field.Type.IsShorthand()}
	if opts.Shorthand {
		pv.HoverValue = strings.TrimSpace(field.Mapping.Apply(pv.HoverValue))
		opts.Transform = c.sideTransform(field)
	} else {
		opts.Transform = c.valueTransform(field)
		value := opts.Transform(pv.HoverValue)
		if value == "" {
			log.Debug("Skipping hover", zap.String("reason", reasonEmpty))
			return nil
		}
		if field.Type == model.FieldTypeColor {
			if err := c.builder.CheckColor(value); err != nil {
				log.Debug("Skipping hover", zap.String("reason", reasonUnsafe), zap.Error(err))
				return nil
			}
		}
	}

	rule, err := hover.ResolveWith(pv, Selector(field.HoverSelector, slug), field.CSSProperty, field.Important, opts)
	if err != nil {
		log.Debug("Skipping hover", zap.String("reason", reasonUnsafe), zap.Error(err))
		return nil
	}
	return rule
}

func (c *Compiler) declare(field model.FieldDescriptor, value string) (string, error) {
	if field.Type.IsShorthand() {
		return shorthand.ExpandWith(value, field.CSSProperty, field.Important, shorthand.Options{
			Transform: c.sideTransform(field),
			Builder:   c.builder,
		})
	}
	if field.Type == model.FieldTypeColor {
		if err := c.builder.CheckColor(value); err != nil {
			return "", err
		}
	}
	return c.builder.Build(field.CSSProperty, value, field.Important)
}

// valueTransform validates units and then applies the mapping, trimming its
// output so a blank mapping result counts as empty. Shorthand fields only get
// the mapping here; their sides are validated one by one.
func (c *Compiler) valueTransform(field model.FieldDescriptor) func(string) string {
	validate := len(field.AllowedUnits) > 0 && !field.Type.IsShorthand()
	return func(value string) string {
		value = strings.TrimSpace(value)
		if validate {
			value = units.Validate(value, field.AllowedUnits)
		}
		return strings.TrimSpace(field.Mapping.Apply(value))
	}
}

func (c *Compiler) sideTransform(field model.FieldDescriptor) func(string) string {
	if len(field.AllowedUnits) == 0 {
		return nil
	}
	return func(value string) string {
		return units.Validate(value, field.AllowedUnits)
	}
}

func isDefault(field model.FieldDescriptor, value string) bool {
	if field.DefaultUnitValue == nil || value == "" || field.Type.IsShorthand() {
		return false
	}
	n, ok := units.Strip(value, field.AllowedUnits)
	return ok && n == float64(*field.DefaultUnitValue)
}
