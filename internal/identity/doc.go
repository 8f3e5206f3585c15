// Package identity ensures the global git author identity and default branch are configured.
package identity
