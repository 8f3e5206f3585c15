// Package gitignore writes a .gitignore from a named preset or custom patterns.
package gitignore
