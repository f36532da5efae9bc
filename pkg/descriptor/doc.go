// Package descriptor loads module field descriptors from JSON or YAML files.
// Each file holds a `modules:` map of module name to its styleable fields and
// icon offsets; mappings are referenced by registry name or given inline as a
// lookup table. Loaded modules can be passed through model.Decorator values
// (for example defaults.Registry) before they are stored.
package descriptor
