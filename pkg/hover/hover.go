// Package hover resolves the optional hover-state override of a property.
package hover

import (
	"strings"

	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/shorthand"
)

// Options tune ResolveWith.
type Options struct {
	// Transform runs on the hover value (unit validation, mapping).
	Transform func(string) string
	// Builder renders the declaration; the zero value is lenient.
	Builder declaration.Builder
	// Shorthand expands the value as a four-side margin/padding value.
	Shorthand bool
}

// Resolve returns the hover rule for pv, or nil when there is no hover
// value. The rule is always scoped to selector, which the caller supplies.
func Resolve(pv model.PropertyValue, selector, property string, important bool) *model.StyleRule {
	rule, _ := ResolveWith(pv, selector, property, important, Options{})
	return rule
}

// ResolveWith is Resolve with a value transform and a policy-aware builder.
// Errors only surface from a strict builder.
func ResolveWith(pv model.PropertyValue, selector, property string, important bool, opts Options) (*model.StyleRule, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || pv.HoverValue == "" {
		return nil, nil
	}

	var (
		decl string
		err  error
	)
	if opts.Shorthand {
		decl, err = shorthand.ExpandWith(pv.HoverValue, property, important, shorthand.Options{
			Transform: opts.Transform,
			Builder:   opts.Builder,
		})
	} else {
		value := pv.HoverValue
		if opts.Transform != nil {
			value = opts.Transform(value)
		}
		if value = strings.TrimSpace(value); value == "" {
			return nil, nil
		}
		decl, err = opts.Builder.Build(property, value, important)
	}
	if err != nil || decl == "" {
		return nil, err
	}

	return &model.StyleRule{Selector: selector, Declaration: decl}, nil
}
