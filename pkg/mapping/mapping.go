package mapping

import "strings"

// Kind tags which variant a Mapping holds.
type Kind int

const (
	// KindNone leaves values untouched.
	KindNone Kind = iota
	// KindFunc passes values through a pure function.
	KindFunc
	// KindTable looks values up in a static table; misses map to "".
	KindTable
)

// String returns the lowercase variant name used in logs and descriptors.
func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindTable:
		return "table"
	default:
		return "none"
	}
}

// Func transforms a raw attribute value into its CSS-ready form. It must be
// pure: the compiler calls it for the desktop, tablet, phone and hover
// variants of the same field.
type Func func(string) string

// Mapping is a tagged variant over the supported value transforms. The zero
// value is the identity mapping.
type Mapping struct {
	kind  Kind
	name  string
	fn    Func
	table map[string]string
}

// None returns the identity mapping.
func None() Mapping {
	return Mapping{}
}

// FromFunc wraps fn as a Mapping. A nil function yields the identity mapping.
func FromFunc(fn Func) Mapping {
	if fn == nil {
		return Mapping{}
	}
	return Mapping{kind: KindFunc, fn: fn}
}

// FromTable copies table into a lookup Mapping. Keys absent from the table
// map to the empty string, which downstream means "emit nothing".
func FromTable(table map[string]string) Mapping {
	copied := make(map[string]string, len(table))
	for key, value := range table {
		copied[key] = value
	}
	return Mapping{kind: KindTable, table: copied}
}

// Named returns a copy of m labelled with name. Labels only surface in logs
// and in Registry listings.
func Named(name string, m Mapping) Mapping {
	m.name = strings.TrimSpace(name)
	return m
}

// Kind reports the variant held by the mapping.
func (m Mapping) Kind() Kind {
	return m.kind
}

// Name returns the label assigned through Named, or the variant name.
func (m Mapping) Name() string {
	if m.name != "" {
		return m.name
	}
	return m.kind.String()
}

// IsZero reports whether m is the identity mapping.
func (m Mapping) IsZero() bool {
	return m.kind == KindNone
}

// Table returns a copy of the lookup table, or nil for non-table mappings.
func (m Mapping) Table() map[string]string {
	if m.kind != KindTable {
		return nil
	}
	out := make(map[string]string, len(m.table))
	for key, value := range m.table {
		out[key] = value
	}
	return out
}

// Apply transforms value. Empty input always maps to empty output so an
// unset breakpoint can never turn into a declaration.
func (m Mapping) Apply(value string) string {
	if value == "" {
		return ""
	}
	switch m.kind {
	case KindFunc:
		return m.fn(value)
	case KindTable:
		return m.table[value]
	default:
		return value
	}
}

// Map applies m to value.
func Map(value string, m Mapping) string {
	return m.Apply(value)
}
