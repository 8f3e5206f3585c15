package setup

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/quickrepo/internal/identity"
	"github.com/temirov/quickrepo/internal/reconcile"
	"github.com/temirov/quickrepo/internal/shared"
	"github.com/temirov/quickrepo/internal/sshkey"
	"github.com/temirov/quickrepo/internal/ui"
	pathutils "github.com/temirov/quickrepo/internal/utils/path"
)

const (
	currentDirectoryTemplateConstant   = "📁 You are currently in:\n    %s\n\n"
	unsuitableDirectoryWarningConstant = "⚠️ This may not be a good project directory.\n"
	unsuitableDirectoryPromptConstant  = "Are you sure you want to continue? [y/n]: "
	dependencyMissingTemplateConstant  = "%w: %s"
	directoryDeclinedMessageConstant   = "setup declined in an unsuitable directory"
	dependencyMissingMessageConstant   = "setup dependency missing"
	setupStartedLogMessageConstant     = "setup started"
	setupCompletedLogMessageConstant   = "setup completed"
	setupStoppedLogMessageConstant     = "setup stopped"
	workingDirectoryLogFieldConstant   = "working_directory"
	dryRunLogFieldConstant             = "dry_run"
	remoteLogFieldConstant             = "remote"
	pushedLogFieldConstant             = "pushed"
	branchOutcomeLogFieldConstant      = "default_branch_outcome"
	keyOutcomeLogFieldConstant         = "ssh_key_outcome"
	identityDependencyNameConstant     = "identity"
	sshKeysDependencyNameConstant      = "ssh keys"
	reconcilerDependencyNameConstant   = "reconciler"
	prompterDependencyNameConstant     = "prompter"
	defaultBranchStepErrorTemplate     = "default branch: %w"
	identityStepErrorTemplate          = "identity: %w"
	sshKeyStepErrorTemplate            = "ssh key: %w"
	directoryGuardStepErrorTemplate    = "directory guard: %w"
)

var (
	// ErrDirectoryDeclined indicates the user stopped the run after the home or root directory warning.
	ErrDirectoryDeclined = errors.New(directoryDeclinedMessageConstant)
	// ErrDependencyMissing indicates a required collaborator was not supplied.
	ErrDependencyMissing = errors.New(dependencyMissingMessageConstant)
)

// IdentityBootstrapper covers the global git defaults and identity steps.
type IdentityBootstrapper interface {
	EnsureDefaultBranch(executionContext context.Context, preferredBranch string) (identity.BranchOutcome, error)
	EnsureIdentity(executionContext context.Context) (identity.Identity, error)
}

// KeyEnsurer makes sure an SSH key exists or was offered.
type KeyEnsurer interface {
	Ensure(executionContext context.Context) (sshkey.Outcome, error)
}

// Reconciler links the working directory with its remote and publishes it.
type Reconciler interface {
	Reconcile(executionContext context.Context, workingDirectory string) (reconcile.Result, error)
}

// RunnerDependencies enumerates collaborators required by the runner.
type RunnerDependencies struct {
	Output       io.Writer
	Reporter     shared.Reporter
	Prompter     shared.Prompter
	HomeExpander *pathutils.HomeExpander
	Identity     IdentityBootstrapper
	SSHKeys      KeyEnsurer
	Reconciler   Reconciler
	Logger       *zap.Logger
}

// Report collects the outcome of every step of a run.
type Report struct {
	WorkingDirectory string
	BranchOutcome    identity.BranchOutcome
	Identity         identity.Identity
	KeyOutcome       sshkey.Outcome
	Reconciliation   reconcile.Result
}

// Runner executes the setup steps in order.
type Runner struct {
	output        io.Writer
	reporter      shared.Reporter
	prompter      shared.Prompter
	homeExpander  *pathutils.HomeExpander
	identity      IdentityBootstrapper
	sshKeys       KeyEnsurer
	reconciler    Reconciler
	logger        *zap.Logger
	configuration Configuration
}

// NewRunner validates dependencies and constructs a runner.
func NewRunner(dependencies RunnerDependencies, configuration Configuration) (*Runner, error) {
	switch {
	case dependencies.Prompter == nil:
		return nil, fmt.Errorf(dependencyMissingTemplateConstant, ErrDependencyMissing, prompterDependencyNameConstant)
	case dependencies.Identity == nil:
		return nil, fmt.Errorf(dependencyMissingTemplateConstant, ErrDependencyMissing, identityDependencyNameConstant)
	case dependencies.SSHKeys == nil:
		return nil, fmt.Errorf(dependencyMissingTemplateConstant, ErrDependencyMissing, sshKeysDependencyNameConstant)
	case dependencies.Reconciler == nil:
		return nil, fmt.Errorf(dependencyMissingTemplateConstant, ErrDependencyMissing, reconcilerDependencyNameConstant)
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(output)
	}
	homeExpander := dependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		output:        output,
		reporter:      reporter,
		prompter:      dependencies.Prompter,
		homeExpander:  homeExpander,
		identity:      dependencies.Identity,
		sshKeys:       dependencies.SSHKeys,
		reconciler:    dependencies.Reconciler,
		logger:        logger,
		configuration: configuration.Sanitize(),
	}, nil
}

// Run performs the whole setup for workingDirectory. Decline outcomes surface as errors
// from this package or from reconcile so callers can map them to exit statuses.
func (runner *Runner) Run(executionContext context.Context, workingDirectory string) (Report, error) {
	report := Report{WorkingDirectory: workingDirectory}
	runner.logger.Info(
		setupStartedLogMessageConstant,
		zap.String(workingDirectoryLogFieldConstant, workingDirectory),
		zap.Bool(dryRunLogFieldConstant, runner.configuration.DryRun),
	)

	ui.RenderBanner(runner.output)
	runner.reporter.Printf(currentDirectoryTemplateConstant, workingDirectory)

	if guardError := runner.guardDirectory(workingDirectory); guardError != nil {
		return runner.stop(report, guardError)
	}

	branchOutcome, branchError := runner.identity.EnsureDefaultBranch(executionContext, runner.configuration.DefaultBranch)
	if branchError != nil {
		return runner.stop(report, fmt.Errorf(defaultBranchStepErrorTemplate, branchError))
	}
	report.BranchOutcome = branchOutcome

	resolvedIdentity, identityError := runner.identity.EnsureIdentity(executionContext)
	if identityError != nil {
		return runner.stop(report, fmt.Errorf(identityStepErrorTemplate, identityError))
	}
	report.Identity = resolvedIdentity

	keyOutcome, keyError := runner.sshKeys.Ensure(executionContext)
	if keyError != nil {
		return runner.stop(report, fmt.Errorf(sshKeyStepErrorTemplate, keyError))
	}
	report.KeyOutcome = keyOutcome

	reconciliation, reconcileError := runner.reconciler.Reconcile(executionContext, workingDirectory)
	report.Reconciliation = reconciliation
	if reconcileError != nil {
		return runner.stop(report, reconcileError)
	}

	ui.RenderSummary(runner.output, ui.Summary{
		WorkingDirectory: workingDirectory,
		Username:         resolvedIdentity.Username,
		Email:            resolvedIdentity.Email,
		RemoteReference:  reconciliation.RemoteReference,
		DryRun:           runner.configuration.DryRun,
	})

	runner.logger.Info(
		setupCompletedLogMessageConstant,
		zap.String(workingDirectoryLogFieldConstant, workingDirectory),
		zap.String(remoteLogFieldConstant, reconciliation.RemoteReference),
		zap.Bool(pushedLogFieldConstant, reconciliation.Pushed),
		zap.Int(branchOutcomeLogFieldConstant, int(branchOutcome)),
		zap.Int(keyOutcomeLogFieldConstant, int(keyOutcome)),
	)
	return report, nil
}

func (runner *Runner) guardDirectory(workingDirectory string) error {
	if !runner.homeExpander.IsHomeOrRoot(workingDirectory) {
		return nil
	}

	runner.reporter.Printf(unsuitableDirectoryWarningConstant)
	confirmed, confirmError := runner.prompter.Confirm(unsuitableDirectoryPromptConstant)
	if confirmError != nil {
		return fmt.Errorf(directoryGuardStepErrorTemplate, confirmError)
	}
	if !confirmed {
		return ErrDirectoryDeclined
	}
	return nil
}

func (runner *Runner) stop(report Report, stopError error) (Report, error) {
	runner.logger.Debug(setupStoppedLogMessageConstant, zap.Error(stopError))
	return report, stopError
}
