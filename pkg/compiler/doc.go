// Package compiler drives the attribute-to-stylesheet pipeline for builder
// modules: attribute extraction, the responsive mode switch, unit
// validation, value mapping, shorthand expansion, declaration rendering and
// hover overrides, with every emitted rule appended to a stylesheet.Sheet.
package compiler
