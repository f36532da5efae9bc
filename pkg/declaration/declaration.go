package declaration

import (
	"strings"
)

const importantSuffix = "!important"

// Build renders "<prop>: <value>;" or "<prop>: <value> !important;". The value
// is trusted as opaque text; use a strict Builder to vet it first. A value
// that already carries !important is not suffixed twice.
func Build(property, value string, important bool) string {
	property = strings.TrimSpace(property)
	value = strings.TrimSpace(value)

	var b strings.Builder
	b.Grow(len(property) + len(value) + len(importantSuffix) + 4)
	b.WriteString(property)
	b.WriteString(": ")
	b.WriteString(value)
	if important && !HasImportant(value) {
		b.WriteString(" ")
		b.WriteString(importantSuffix)
	}
	b.WriteString(";")
	return b.String()
}

// HasImportant reports whether value ends with an !important flag.
func HasImportant(value string) bool {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < len(importantSuffix) {
		return false
	}
	return strings.EqualFold(trimmed[len(trimmed)-len(importantSuffix):], importantSuffix)
}

// TrimImportant removes a trailing !important flag, reporting whether one
// was present.
func TrimImportant(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if !HasImportant(trimmed) {
		return trimmed, false
	}
	return strings.TrimSpace(trimmed[:len(trimmed)-len(importantSuffix)]), true
}

// Join concatenates declarations with a single space, skipping empties.
func Join(declarations ...string) string {
	parts := make([]string, 0, len(declarations))
	for _, decl := range declarations {
		if decl = strings.TrimSpace(decl); decl != "" {
			parts = append(parts, decl)
		}
	}
	return strings.Join(parts, " ")
}
