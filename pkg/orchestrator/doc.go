// Package orchestrator wires the descriptor store, attribute transformers,
// compiler, style sheet and renderer registry into a single entry point that
// turns a module's attribute bag into rendered CSS.
package orchestrator
