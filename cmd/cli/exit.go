package cli

import (
	"errors"

	"github.com/temirov/quickrepo/internal/gitrepo"
	"github.com/temirov/quickrepo/internal/reconcile"
	"github.com/temirov/quickrepo/internal/setup"
)

const (
	// ExitStatusSuccess is returned for completed runs and safe declines.
	ExitStatusSuccess = 0
	// ExitStatusFailure is returned for unsafe declines, malformed input, and errors.
	ExitStatusFailure = 1
)

// ExitStatus maps an execution error to the process exit status and reports whether
// the error still has to be printed. Declines and invalid remotes were already explained
// to the user while the run was in progress.
func ExitStatus(executionError error) (int, bool) {
	if executionError == nil || reconcile.IsSafeDecline(executionError) {
		return ExitStatusSuccess, false
	}

	var invalidReferenceError gitrepo.InvalidRemoteReferenceError
	switch {
	case errors.As(executionError, &invalidReferenceError):
		return ExitStatusFailure, false
	case errors.Is(executionError, reconcile.ErrLinkDeclined),
		errors.Is(executionError, reconcile.ErrSyncCancelled),
		errors.Is(executionError, setup.ErrDirectoryDeclined):
		return ExitStatusFailure, false
	default:
		return ExitStatusFailure, true
	}
}
