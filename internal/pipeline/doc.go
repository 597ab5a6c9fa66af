// Package pipeline wires input, grouping, shuffling, auditing and output
// into a single run. Front ends (CLI and TUI) talk to it through Runner and
// receive ProgressEvents while it works.
package pipeline
