// Package prompt implements interactive question flows for terminal sessions.
//
// Line-oriented prompting is always available; richer terminal widgets are used
// when both standard input and standard output are attached to a terminal.
package prompt
