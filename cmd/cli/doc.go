// Package cli constructs the quickrepo command-line interface, wiring the
// Cobra root command, configuration loader, structured logging, and the
// setup steps that run against the current directory.
package cli
