// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging, lifecycle
// notifications, and a simulation mode that announces mutating commands
// instead of running them. Commands are always passed as argument lists,
// never as shell strings, so user-supplied values cannot be reinterpreted
// by a shell.
package execshell
