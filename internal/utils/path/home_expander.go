// Package pathutils resolves the home directory shortcuts used by setup paths
// and recognizes directories that are poor project roots.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant        = "~"
	forwardSlashConstant       = "/"
	filesystemRootPathConstant = "/"
	emptyHomeDirectoryConstant = ""
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander resolves the home directory once and reuses it for every lookup.
type HomeExpander struct {
	provider      HomeDirectoryProvider
	resolveOnce   sync.Once
	homeDirectory string
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand replaces a leading "~" or "~/" with the home directory.
// "~user" forms and paths are returned unchanged when the home directory is unknown.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}
	homeDirectory, resolved := expander.HomeDirectory()
	if !resolved {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, tildeSymbolConstant)
	switch {
	case len(remainder) == 0:
		return homeDirectory
	case strings.HasPrefix(remainder, forwardSlashConstant), strings.HasPrefix(remainder, string(os.PathSeparator)):
		return filepath.Join(homeDirectory, remainder[1:])
	default:
		return candidatePath
	}
}

// HomeDirectory returns the resolved home directory, or false when it cannot be determined.
func (expander *HomeExpander) HomeDirectory() (string, bool) {
	if expander == nil {
		return emptyHomeDirectoryConstant, false
	}
	expander.resolveOnce.Do(func() {
		resolvedDirectory, resolveError := expander.provider()
		if resolveError == nil {
			expander.homeDirectory = resolvedDirectory
		}
	})
	return expander.homeDirectory, len(expander.homeDirectory) > 0
}

// IsHomeOrRoot reports whether directory is the home directory itself or the filesystem root,
// the two places where initializing a repository is almost always a mistake.
func (expander *HomeExpander) IsHomeOrRoot(directory string) bool {
	cleanedDirectory := filepath.Clean(directory)
	if cleanedDirectory == filesystemRootPathConstant {
		return true
	}
	homeDirectory, resolved := expander.HomeDirectory()
	return resolved && cleanedDirectory == filepath.Clean(homeDirectory)
}
