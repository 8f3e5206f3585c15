package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/quickrepo/internal/execshell"
	"github.com/temirov/quickrepo/internal/githubprobe"
	"github.com/temirov/quickrepo/internal/gitignore"
	"github.com/temirov/quickrepo/internal/gitrepo"
	"github.com/temirov/quickrepo/internal/shared"
	pathutils "github.com/temirov/quickrepo/internal/utils/path"
)

const (
	defaultCommitMessageConstant     = "Initial commit"
	defaultForceSyncMessageConstant  = "Force sync to GitHub"
	defaultScratchClonePathConstant  = "/tmp/quickrepo-temp-clone"
	currentDirectoryArgumentConstant = "."

	initializePromptConstant       = "➤ No Git repo found. Initialize new Git repo here? [y/n]: "
	initializationDeclinedConstant = "❌ Exiting.\n"
	initializedMessageConstant     = "✅ Initialized new Git repository.\n\n"
	remotePromptConstant           = "➤ Enter SSH path (e.g., username/repo.git): "
	invalidRemoteTemplateConstant  = "⚠️ %s\n"
	remoteExistsTemplateConstant   = "⚠️ That repo already exists on GitHub:\n   %s\n"
	linkPromptConstant             = "Are you trying to link this folder to that repo? [y/n]: "
	linkDeclinedConstant           = "❌ Aborting to avoid accidental overwrite.\n"
	comparePromptConstant          = "Do you want to compare local files to what's on GitHub? [y/n]: "
	compareFinishedConstant        = "📎 Above are file differences between local and GitHub.\n\n"
	scratchRemovalTemplateConstant = "[DRY-RUN] Would remove %s\n"
	syncPromptConstant             = "Choose sync option:"
	pullOptionLabelConstant        = "Pull changes from GitHub (rebase)"
	forcePushOptionLabelConstant   = "Overwrite GitHub with local (force push)"
	cancelOptionLabelConstant      = "Cancel setup"
	syncedMessageConstant          = "✅ Synced with GitHub.\n"
	forcePushedMessageConstant     = "🔥 Force-pushed local files to GitHub.\n"
	syncCancelledConstant          = "❌ Aborted by user.\n"
	remoteSetTemplateConstant      = "✅ Remote origin set: %s\n\n"
	stagedMessageConstant          = "✅ Staged all files.\n\n"
	commitPromptConstant           = "➤ Enter a commit message: "
	commitMadeTemplateConstant     = "✅ Commit made: %s\n\n"
	pushPromptConstant             = "➤ Push to GitHub now? [y/n]: "
	pushedMessageConstant          = "✅ Pushed to GitHub!\n\n"
	pushFailedTemplateConstant     = "❌ Push failed.\n💡 Try:\n    git pull --rebase %s %s\n\n"
	pushSkippedMessageConstant     = "⚠️ Push skipped.\n\n"

	promptErrorTemplateConstant     = "reconciliation prompt failed: %w"
	scratchRemovalErrorTemplate     = "unable to remove %s: %w"
	scratchInsideProjectTemplate    = "%w: %s"
	parentDirectoryPrefixConstant   = ".."
	ignoreGenerationErrorTemplate   = "unable to generate ignore rules: %w"
	dependencyMissingTemplate       = "%w: %s"
	executorDependencyNameConstant  = "executor"
	prompterDependencyNameConstant  = "prompter"
	detectorDependencyNameConstant  = "repository detector"
	proberDependencyNameConstant    = "remote prober"
	generatorDependencyNameConstant = "ignore generator"
	fileSystemDependencyName        = "filesystem"
)

// Sync option keys presented when the remote already exists.
const (
	SyncOptionPull      = "1"
	SyncOptionForcePush = "2"
	SyncOptionCancel    = "3"
)

// RepositoryDetector decides whether a directory already holds a repository.
type RepositoryDetector interface {
	IsRepository(directory string) bool
}

// IgnoreGenerator writes ignore rules into a directory.
type IgnoreGenerator interface {
	Generate(directory string) (gitignore.Result, error)
}

// Options carries the names and messages used by the sequence.
type Options struct {
	Branch           string
	RemoteName       string
	RemoteHost       string
	CommitMessage    string
	ForceSyncMessage string
	ScratchClonePath string
}

// ServiceDependencies enumerates collaborators required by Service.
type ServiceDependencies struct {
	Executor        shared.CommandExecutor
	Prompter        shared.Prompter
	Reporter        shared.Reporter
	FileSystem      shared.FileSystem
	Detector        RepositoryDetector
	Prober          githubprobe.Prober
	IgnoreGenerator IgnoreGenerator
	HomeExpander    *pathutils.HomeExpander
}

// Result summarizes a completed sequence.
type Result struct {
	Initialized     bool
	RemoteReference string
	RemoteExisted   bool
	SyncOption      string
	Ignore          gitignore.Result
	CommitMessage   string
	PushRequested   bool
	Pushed          bool
}

// Service runs the reconciliation sequence.
type Service struct {
	executor        shared.CommandExecutor
	prompter        shared.Prompter
	reporter        shared.Reporter
	fileSystem      shared.FileSystem
	detector        RepositoryDetector
	prober          githubprobe.Prober
	ignoreGenerator IgnoreGenerator
	homeExpander    *pathutils.HomeExpander
	options         Options
}

// NewService validates dependencies and applies option defaults.
func NewService(dependencies ServiceDependencies, options Options) (*Service, error) {
	switch {
	case dependencies.Executor == nil:
		return nil, fmt.Errorf(dependencyMissingTemplate, ErrDependencyMissing, executorDependencyNameConstant)
	case dependencies.Prompter == nil:
		return nil, fmt.Errorf(dependencyMissingTemplate, ErrDependencyMissing, prompterDependencyNameConstant)
	case dependencies.FileSystem == nil:
		return nil, fmt.Errorf(dependencyMissingTemplate, ErrDependencyMissing, fileSystemDependencyName)
	case dependencies.Detector == nil:
		return nil, fmt.Errorf(dependencyMissingTemplate, ErrDependencyMissing, detectorDependencyNameConstant)
	case dependencies.Prober == nil:
		return nil, fmt.Errorf(dependencyMissingTemplate, ErrDependencyMissing, proberDependencyNameConstant)
	case dependencies.IgnoreGenerator == nil:
		return nil, fmt.Errorf(dependencyMissingTemplate, ErrDependencyMissing, generatorDependencyNameConstant)
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	homeExpander := dependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	return &Service{
		executor:        dependencies.Executor,
		prompter:        dependencies.Prompter,
		reporter:        reporter,
		fileSystem:      dependencies.FileSystem,
		detector:        dependencies.Detector,
		prober:          dependencies.Prober,
		ignoreGenerator: dependencies.IgnoreGenerator,
		homeExpander:    homeExpander,
		options:         options.withDefaults(),
	}, nil
}

func (options Options) withDefaults() Options {
	if len(strings.TrimSpace(options.Branch)) == 0 {
		options.Branch = shared.MainBranchNameConstant
	}
	if len(strings.TrimSpace(options.RemoteName)) == 0 {
		options.RemoteName = shared.OriginRemoteNameConstant
	}
	if len(strings.TrimSpace(options.CommitMessage)) == 0 {
		options.CommitMessage = defaultCommitMessageConstant
	}
	if len(strings.TrimSpace(options.ForceSyncMessage)) == 0 {
		options.ForceSyncMessage = defaultForceSyncMessageConstant
	}
	if len(strings.TrimSpace(options.ScratchClonePath)) == 0 {
		options.ScratchClonePath = defaultScratchClonePathConstant
	}
	return options
}

// Reconcile runs the full sequence in the working directory.
func (service *Service) Reconcile(executionContext context.Context, workingDirectory string) (Result, error) {
	result := Result{}

	initialized, initializationError := service.ensureRepository(executionContext, workingDirectory)
	if initializationError != nil {
		return result, initializationError
	}
	result.Initialized = initialized

	remoteReference, remoteError := service.resolveRemote()
	if remoteError != nil {
		return result, remoteError
	}
	result.RemoteReference = remoteReference

	if service.prober.Exists(executionContext, remoteReference) {
		result.RemoteExisted = true
		syncOption, syncError := service.reconcileExistingRemote(executionContext, workingDirectory, remoteReference)
		if syncError != nil {
			return result, syncError
		}
		result.SyncOption = syncOption
	} else {
		service.linkRemote(executionContext, workingDirectory, remoteReference)
		service.reporter.Printf(remoteSetTemplateConstant, remoteReference)
	}

	ignoreResult, ignoreError := service.ignoreGenerator.Generate(workingDirectory)
	if ignoreError != nil {
		return result, fmt.Errorf(ignoreGenerationErrorTemplate, ignoreError)
	}
	result.Ignore = ignoreResult

	publishError := service.publish(executionContext, workingDirectory, &result)
	return result, publishError
}

func (service *Service) ensureRepository(executionContext context.Context, workingDirectory string) (bool, error) {
	if service.detector.IsRepository(workingDirectory) {
		return false, nil
	}

	confirmed, confirmError := service.prompter.Confirm(initializePromptConstant)
	if confirmError != nil {
		return false, fmt.Errorf(promptErrorTemplateConstant, confirmError)
	}
	if !confirmed {
		service.reporter.Printf(initializationDeclinedConstant)
		return false, ErrInitializationDeclined
	}

	service.git(executionContext, workingDirectory, "init")
	service.reporter.Printf(initializedMessageConstant)
	return true, nil
}

func (service *Service) resolveRemote() (string, error) {
	remoteInput, askError := service.prompter.Ask(remotePromptConstant)
	if askError != nil {
		return "", fmt.Errorf(promptErrorTemplateConstant, askError)
	}
	remoteReference, normalizeError := gitrepo.NormalizeReference(remoteInput, service.options.RemoteHost)
	if normalizeError != nil {
		service.reporter.Printf(invalidRemoteTemplateConstant, normalizeError.Error())
		return "", normalizeError
	}
	return remoteReference, nil
}

func (service *Service) reconcileExistingRemote(executionContext context.Context, workingDirectory string, remoteReference string) (string, error) {
	service.reporter.Printf(remoteExistsTemplateConstant, remoteReference)
	linkConfirmed, linkError := service.prompter.Confirm(linkPromptConstant)
	if linkError != nil {
		return "", fmt.Errorf(promptErrorTemplateConstant, linkError)
	}
	if !linkConfirmed {
		service.reporter.Printf(linkDeclinedConstant)
		return "", ErrLinkDeclined
	}

	compareConfirmed, compareError := service.prompter.Confirm(comparePromptConstant)
	if compareError != nil {
		return "", fmt.Errorf(promptErrorTemplateConstant, compareError)
	}
	if compareConfirmed {
		if comparisonError := service.compareWithRemote(executionContext, workingDirectory, remoteReference); comparisonError != nil {
			return "", comparisonError
		}
	}

	syncOption, chooseError := service.prompter.Choose(syncPromptConstant, []shared.PromptOption{
		{Key: SyncOptionPull, Label: pullOptionLabelConstant},
		{Key: SyncOptionForcePush, Label: forcePushOptionLabelConstant},
		{Key: SyncOptionCancel, Label: cancelOptionLabelConstant},
	})
	if chooseError != nil {
		return "", fmt.Errorf(promptErrorTemplateConstant, chooseError)
	}

	switch strings.TrimSpace(syncOption) {
	case SyncOptionPull:
		service.linkRemote(executionContext, workingDirectory, remoteReference)
		service.git(executionContext, workingDirectory, "pull", service.options.RemoteName, service.options.Branch, "--rebase")
		service.reporter.Printf(syncedMessageConstant)
		return SyncOptionPull, nil
	case SyncOptionForcePush:
		service.linkRemote(executionContext, workingDirectory, remoteReference)
		service.git(executionContext, workingDirectory, "add", currentDirectoryArgumentConstant)
		service.git(executionContext, workingDirectory, "commit", "-m", service.options.ForceSyncMessage)
		service.git(executionContext, workingDirectory, "branch", "-M", service.options.Branch)
		service.git(executionContext, workingDirectory, "push", "--force", service.options.RemoteName, service.options.Branch)
		service.reporter.Printf(forcePushedMessageConstant)
		return SyncOptionForcePush, nil
	default:
		service.reporter.Printf(syncCancelledConstant)
		return "", ErrSyncCancelled
	}
}

// compareWithRemote clones the remote into the scratch location and prints a recursive brief diff.
func (service *Service) compareWithRemote(executionContext context.Context, workingDirectory string, remoteReference string) error {
	scratchPath, scratchError := service.resolveScratchPath(workingDirectory)
	if scratchError != nil {
		return scratchError
	}
	if service.executor.DryRun() {
		service.reporter.Printf(scratchRemovalTemplateConstant, scratchPath)
	} else if removalError := service.fileSystem.RemoveAll(scratchPath); removalError != nil {
		return fmt.Errorf(scratchRemovalErrorTemplate, scratchPath, removalError)
	}

	service.git(executionContext, workingDirectory, "clone", remoteReference, scratchPath)
	_ = service.executor.Run(executionContext, execshell.ShellCommand{
		Name: execshell.CommandDiff,
		Details: execshell.CommandDetails{
			Arguments:        []string{"-rq", scratchPath, currentDirectoryArgumentConstant},
			WorkingDirectory: workingDirectory,
		},
	})
	service.reporter.Printf(compareFinishedConstant)
	return nil
}

// resolveScratchPath expands a leading "~" and anchors relative paths at the working directory.
// The clone must stay outside the project or the next "git add ." would stage it.
func (service *Service) resolveScratchPath(workingDirectory string) (string, error) {
	scratchPath := service.homeExpander.Expand(service.options.ScratchClonePath)
	projectDirectory := filepath.Clean(workingDirectory)
	if !filepath.IsAbs(scratchPath) {
		scratchPath = filepath.Join(projectDirectory, scratchPath)
	}
	scratchPath = filepath.Clean(scratchPath)

	relativePath, relativeError := filepath.Rel(projectDirectory, scratchPath)
	if relativeError != nil {
		return scratchPath, nil
	}
	if relativePath == parentDirectoryPrefixConstant || strings.HasPrefix(relativePath, parentDirectoryPrefixConstant+string(filepath.Separator)) {
		return scratchPath, nil
	}
	return "", fmt.Errorf(scratchInsideProjectTemplate, ErrScratchInsideProject, scratchPath)
}

// linkRemote adds the remote, replacing the URL of an already configured remote with the same name.
func (service *Service) linkRemote(executionContext context.Context, workingDirectory string, remoteReference string) {
	added := service.executor.Succeeded(executionContext, gitCommand(workingDirectory, "remote", "add", service.options.RemoteName, remoteReference))
	if added {
		return
	}
	service.git(executionContext, workingDirectory, "remote", "set-url", service.options.RemoteName, remoteReference)
}

func (service *Service) publish(executionContext context.Context, workingDirectory string, result *Result) error {
	service.git(executionContext, workingDirectory, "add", currentDirectoryArgumentConstant)
	service.reporter.Printf(stagedMessageConstant)

	commitMessage, askError := service.prompter.Ask(commitPromptConstant)
	if askError != nil {
		return fmt.Errorf(promptErrorTemplateConstant, askError)
	}
	commitMessage = strings.TrimSpace(commitMessage)
	if len(commitMessage) == 0 {
		commitMessage = service.options.CommitMessage
	}
	service.git(executionContext, workingDirectory, "commit", "-m", commitMessage)
	service.reporter.Printf(commitMadeTemplateConstant, commitMessage)
	result.CommitMessage = commitMessage

	service.git(executionContext, workingDirectory, "branch", "-M", service.options.Branch)

	pushConfirmed, pushPromptError := service.prompter.Confirm(pushPromptConstant)
	if pushPromptError != nil {
		return fmt.Errorf(promptErrorTemplateConstant, pushPromptError)
	}
	if !pushConfirmed {
		service.reporter.Printf(pushSkippedMessageConstant)
		return nil
	}

	result.PushRequested = true
	result.Pushed = service.executor.Succeeded(executionContext, gitCommand(workingDirectory, "push", "-u", service.options.RemoteName, service.options.Branch))
	if result.Pushed {
		service.reporter.Printf(pushedMessageConstant)
	} else {
		service.reporter.Printf(pushFailedTemplateConstant, service.options.RemoteName, service.options.Branch)
	}
	return nil
}

// git runs a mutating git command; failures are logged by the executor and otherwise ignored.
func (service *Service) git(executionContext context.Context, workingDirectory string, arguments ...string) {
	_ = service.executor.Run(executionContext, gitCommand(workingDirectory, arguments...))
}

func gitCommand(workingDirectory string, arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: workingDirectory,
		},
	}
}
