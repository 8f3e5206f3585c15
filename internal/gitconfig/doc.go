// Package gitconfig reads and writes global git configuration values.
package gitconfig
