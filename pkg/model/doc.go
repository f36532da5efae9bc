// Package model defines the typed descriptors and values the style compiler
// consumes. A Module groups the FieldDescriptors declared once per builder
// module; PropertyValue carries the per-breakpoint and hover variants of one
// field as read from the attribute bag; StyleRule is the only output shape,
// a selector plus a declaration scoped to an optional media query.
package model
