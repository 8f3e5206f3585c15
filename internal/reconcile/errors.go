package reconcile

import "errors"

const (
	initializationDeclinedMessage = "repository initialization declined"
	linkDeclinedMessage           = "linking to existing remote declined"
	syncCancelledMessage          = "sync with existing remote cancelled"
	dependencyMissingMessage      = "reconciliation dependency missing"
	scratchInsideProjectMessage   = "scratch clone path must be outside the project directory"
)

// ErrInitializationDeclined reports that no repository was created. Nothing was changed.
var ErrInitializationDeclined = errors.New(initializationDeclinedMessage)

// ErrLinkDeclined reports that the person refused to link the directory to an existing remote.
var ErrLinkDeclined = errors.New(linkDeclinedMessage)

// ErrSyncCancelled reports that no sync option was chosen for an existing remote.
var ErrSyncCancelled = errors.New(syncCancelledMessage)

// ErrScratchInsideProject reports a scratch clone path that resolves to the project directory or below it.
var ErrScratchInsideProject = errors.New(scratchInsideProjectMessage)

// ErrDependencyMissing indicates the service was constructed without a required collaborator.
var ErrDependencyMissing = errors.New(dependencyMissingMessage)

// IsSafeDecline reports whether the error ends the run without any failure.
func IsSafeDecline(err error) bool {
	return errors.Is(err, ErrInitializationDeclined)
}
