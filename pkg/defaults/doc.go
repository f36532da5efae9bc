// Package defaults fills in the mappings and allowed unit sets a field
// descriptor leaves out, based on matchers over the field's type and CSS
// property. Registries implement model.Decorator so they can run after a
// module is loaded.
package defaults
