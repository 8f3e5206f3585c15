// Package setup orders the first-time repository setup: directory guard, global git
// defaults, identity, SSH key, reconciliation with the remote, and the closing summary.
package setup
