// Package shorthand expands the builder's pipe-delimited four-side values
// ("top|right|bottom|left|linked|important") into margin/padding
// declarations.
//
// A single shorthand declaration is emitted only when all four sides are set
// and agree on importance. Otherwise each non-empty side gets its own
// longhand declaration; empty sides are omitted, never zeroed.
package shorthand

import (
	"strings"

	"github.com/goliatone/go-stylegen/pkg/declaration"
)

const separator = "|"

// Side is one edge of a four-side value.
type Side struct {
	Name      string
	Value     string
	Important bool
}

// Sides is a parsed four-side value.
type Sides struct {
	Top    Side
	Right  Side
	Bottom Side
	Left   Side
	// Linked records the editor's "link sides" toggle. It does not affect
	// output.
	Linked bool
	// Important is the trailing flag marking every side important.
	Important bool
}

// List returns the sides in CSS shorthand order.
func (s Sides) List() []Side {
	return []Side{s.Top, s.Right, s.Bottom, s.Left}
}

// Empty reports whether no side has a value.
func (s Sides) Empty() bool {
	for _, side := range s.List() {
		if side.Value != "" {
			return false
		}
	}
	return true
}

// Parse splits raw into its sides. Missing parts are treated as empty. A side
// may carry its own trailing !important.
func Parse(raw string) Sides {
	parts := strings.Split(raw, separator)
	part := func(idx int) string {
		if idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
		return ""
	}
	side := func(name string, idx int) Side {
		value, important := declaration.TrimImportant(part(idx))
		return Side{Name: name, Value: value, Important: important}
	}
	return Sides{
		Top:       side("top", 0),
		Right:     side("right", 1),
		Bottom:    side("bottom", 2),
		Left:      side("left", 3),
		Linked:    truthy(part(4)),
		Important: truthy(part(5)),
	}
}

// Options tune ExpandWith.
type Options struct {
	// Transform runs on every side value, e.g. unit validation.
	Transform func(string) string
	// Builder renders each declaration; the zero value is lenient.
	Builder declaration.Builder
}

// Expand renders raw as margin/padding declarations for property. It returns
// "" when every side is empty.
func Expand(raw, property string, important bool) string {
	out, _ := ExpandWith(raw, property, important, Options{})
	return out
}

// ExpandWith is Expand with a value transform and a policy-aware builder.
// Errors only surface from a strict builder.
func ExpandWith(raw, property string, important bool, opts Options) (string, error) {
	sides := Parse(raw)
	property = strings.TrimSpace(property)

	present := make([]Side, 0, 4)
	for _, side := range sides.List() {
		if opts.Transform != nil && side.Value != "" {
			side.Value = opts.Transform(side.Value)
		}
		if side.Value == "" {
			continue
		}
		side.Important = important || sides.Important || side.Important
		present = append(present, side)
	}
	if len(present) == 0 {
		return "", nil
	}

	if len(present) == 4 && uniform(present) {
		values := make([]string, 0, 4)
		for _, side := range present {
			values = append(values, side.Value)
		}
		return opts.Builder.Build(property, strings.Join(values, " "), present[0].Important)
	}

	decls := make([]string, 0, len(present))
	for _, side := range present {
		decl, err := opts.Builder.Build(property+"-"+side.Name, side.Value, side.Important)
		if err != nil {
			return "", err
		}
		decls = append(decls, decl)
	}
	return declaration.Join(decls...), nil
}

func uniform(sides []Side) bool {
	for _, side := range sides[1:] {
		if side.Important != sides[0].Important {
			return false
		}
	}
	return true
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes", "important":
		return true
	default:
		return false
	}
}
