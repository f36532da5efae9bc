// Package prompt collects a module's attribute bag interactively. Values are
// asked per field through a Driver; the survey-backed driver is used by the
// CLI and tests substitute a scripted one.
package prompt
