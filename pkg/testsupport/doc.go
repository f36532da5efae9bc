// Package testsupport holds fixture and golden-file helpers shared by package
// tests. Set UPDATE_GOLDENS=1 to refresh goldens from current output.
package testsupport
