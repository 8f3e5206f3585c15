package gitrepo

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/temirov/quickrepo/internal/shared"
)

const gitDirectoryNameConstant = ".git"

// RepositoryDetector decides whether a directory already holds a git repository.
type RepositoryDetector struct {
	fileSystem shared.FileSystem
}

// NewRepositoryDetector constructs a detector that falls back to the supplied filesystem.
func NewRepositoryDetector(fileSystem shared.FileSystem) *RepositoryDetector {
	return &RepositoryDetector{fileSystem: fileSystem}
}

// IsRepository reports whether the directory itself is a repository root. Parent directories are not consulted.
func (detector *RepositoryDetector) IsRepository(directory string) bool {
	if _, openError := git.PlainOpenWithOptions(directory, &git.PlainOpenOptions{DetectDotGit: false}); openError == nil {
		return true
	}
	if detector.fileSystem == nil {
		return false
	}
	markerInfo, statError := detector.fileSystem.Stat(filepath.Join(directory, gitDirectoryNameConstant))
	return statError == nil && markerInfo.IsDir()
}
