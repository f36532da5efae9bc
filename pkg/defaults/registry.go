package defaults

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/units"
)

// Built-in rule identifiers.
const (
	RuleTextAlign    = "text-align"
	RuleRangeUnits   = "range-units"
	RuleSpacingUnits = "spacing-units"
	RuleInputUnits   = "input-units"
)

// Matcher decides whether a rule applies to a field.
type Matcher func(field model.FieldDescriptor) bool

// Apply fills in defaults on a matched field. It must only set values the
// field left empty.
type Apply func(field *model.FieldDescriptor)

type rule struct {
	name     string
	priority int
	match    Matcher
	apply    Apply
	order    int
}

// Registry assigns default mappings and unit sets to fields that omit them.
// Higher priority wins; ties fall back to registration order. Only the
// winning rule is applied to a field.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in rules registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a rule. Rules without a name, matcher or apply function are
// ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher, apply Apply) {
	if r == nil || matcher == nil || apply == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		apply:    apply,
		order:    len(r.rules),
	})
}

// Resolve returns the name of the rule that applies to field.
func (r *Registry) Resolve(field model.FieldDescriptor) (string, bool) {
	if matched, ok := r.resolve(field); ok {
		return matched.name, true
	}
	return "", false
}

func (r *Registry) resolve(field model.FieldDescriptor) (rule, bool) {
	if r == nil {
		return rule{}, false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return rule{}, false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry, true
		}
	}
	return rule{}, false
}

// Decorate implements model.Decorator, applying the winning rule to every
// field of module.
func (r *Registry) Decorate(module *model.Module) error {
	if r == nil || module == nil {
		return nil
	}
	fields := make([]model.FieldDescriptor, len(module.Fields))
	for idx, field := range module.Fields {
		if matched, ok := r.resolve(field); ok {
			matched.apply(&field)
		}
		fields[idx] = field
	}
	module.Fields = fields
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(RuleTextAlign, 90, func(field model.FieldDescriptor) bool {
		return field.Type == model.FieldTypeAlign && field.Mapping.IsZero()
	}, func(field *model.FieldDescriptor) {
		field.Mapping = mapping.TextAlign()
	})

	r.Register(RuleRangeUnits, 80, func(field model.FieldDescriptor) bool {
		return field.Type == model.FieldTypeRange && len(field.AllowedUnits) == 0
	}, func(field *model.FieldDescriptor) {
		field.AllowedUnits = append([]string(nil), units.Length...)
	})

	r.Register(RuleSpacingUnits, 70, func(field model.FieldDescriptor) bool {
		return field.Type.IsShorthand() && len(field.AllowedUnits) == 0
	}, func(field *model.FieldDescriptor) {
		field.AllowedUnits = append([]string(nil), units.Length...)
	})

	r.Register(RuleInputUnits, 60, func(field model.FieldDescriptor) bool {
		if field.Type != model.FieldTypeInput || len(field.AllowedUnits) > 0 {
			return false
		}
		property := strings.ToLower(strings.TrimSpace(field.CSSProperty))
		return strings.HasSuffix(property, "width") || strings.HasSuffix(property, "height") ||
			strings.HasSuffix(property, "size") || strings.HasSuffix(property, "radius")
	}, func(field *model.FieldDescriptor) {
		field.AllowedUnits = append([]string(nil), units.Length...)
	})
}
