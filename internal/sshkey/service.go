package sshkey

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/quickrepo/internal/execshell"
	"github.com/temirov/quickrepo/internal/gitconfig"
	"github.com/temirov/quickrepo/internal/shared"
	pathutils "github.com/temirov/quickrepo/internal/utils/path"
)

const (
	defaultDirectoryConstant       = "~/.ssh"
	defaultKeyTypeConstant         = "ed25519"
	defaultPublicKeySuffixConstant = ".pub"
	keyTypeFlagConstant            = "-t"
	commentFlagConstant            = "-C"
	keyFoundMessageConstant        = "➤ SSH key found.\n\n"
	keyMissingMessageConstant      = "➤ No SSH key found.\n"
	createPromptConstant           = "Would you like to create one now? [y/n]: "
	emailPromptConstant            = "Enter email for SSH key: "
	keyGeneratedMessageConstant    = "✅ SSH key generated. Don't forget to add it to GitHub!\n"
	keySkippedMessageConstant      = "⚠️ Skipping SSH key creation. You will need one to push via SSH.\n"
	promptErrorTemplateConstant    = "ssh key prompt failed: %w"
	dependencyMissingMessage       = "ssh key service dependency missing"
	fileSystemDependencyName       = "filesystem"
	executorDependencyName         = "executor"
	providerDependencyName         = "configuration provider"
	prompterDependencyName         = "prompter"
)

// ErrDependencyMissing indicates the service was constructed without a required collaborator.
var ErrDependencyMissing = errors.New(dependencyMissingMessage)

// Options controls where keys are looked up and which key type is generated.
type Options struct {
	Directory       string
	KeyType         string
	PublicKeySuffix string
}

// Outcome describes the result of Ensure.
type Outcome int

// Possible Ensure outcomes.
const (
	KeyPresent Outcome = iota
	KeyGenerated
	KeySkipped
)

// ServiceDependencies enumerates collaborators required by Service.
type ServiceDependencies struct {
	FileSystem   shared.FileSystem
	Executor     shared.CommandExecutor
	Provider     gitconfig.Provider
	Prompter     shared.Prompter
	Reporter     shared.Reporter
	HomeExpander *pathutils.HomeExpander
}

// Service locates and generates SSH keys.
type Service struct {
	fileSystem   shared.FileSystem
	executor     shared.CommandExecutor
	provider     gitconfig.Provider
	prompter     shared.Prompter
	reporter     shared.Reporter
	homeExpander *pathutils.HomeExpander
	options      Options
}

// NewService validates dependencies and applies option defaults.
func NewService(dependencies ServiceDependencies, options Options) (*Service, error) {
	switch {
	case dependencies.FileSystem == nil:
		return nil, fmt.Errorf("%w: %s", ErrDependencyMissing, fileSystemDependencyName)
	case dependencies.Executor == nil:
		return nil, fmt.Errorf("%w: %s", ErrDependencyMissing, executorDependencyName)
	case dependencies.Provider == nil:
		return nil, fmt.Errorf("%w: %s", ErrDependencyMissing, providerDependencyName)
	case dependencies.Prompter == nil:
		return nil, fmt.Errorf("%w: %s", ErrDependencyMissing, prompterDependencyName)
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	homeExpander := dependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	if len(strings.TrimSpace(options.Directory)) == 0 {
		options.Directory = defaultDirectoryConstant
	}
	if len(strings.TrimSpace(options.KeyType)) == 0 {
		options.KeyType = defaultKeyTypeConstant
	}
	if len(options.PublicKeySuffix) == 0 {
		options.PublicKeySuffix = defaultPublicKeySuffixConstant
	}

	return &Service{
		fileSystem:   dependencies.FileSystem,
		executor:     dependencies.Executor,
		provider:     dependencies.Provider,
		prompter:     dependencies.Prompter,
		reporter:     reporter,
		homeExpander: homeExpander,
		options:      options,
	}, nil
}

// Present reports whether the key directory exists and holds at least one public key.
func (service *Service) Present() bool {
	directory := service.homeExpander.Expand(service.options.Directory)
	directoryInfo, statError := service.fileSystem.Stat(directory)
	if statError != nil || !directoryInfo.IsDir() {
		return false
	}

	entries, readError := service.fileSystem.ReadDir(directory)
	if readError != nil {
		return false
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), service.options.PublicKeySuffix) {
			return true
		}
	}
	return false
}

// Ensure reports an existing key or offers to generate one.
func (service *Service) Ensure(executionContext context.Context) (Outcome, error) {
	if service.Present() {
		service.reporter.Printf(keyFoundMessageConstant)
		return KeyPresent, nil
	}
	service.reporter.Printf(keyMissingMessageConstant)
	return service.Create(executionContext)
}

// Create confirms and runs ssh-keygen, commenting the key with the configured email or a prompted one.
// Generation success is not verified.
func (service *Service) Create(executionContext context.Context) (Outcome, error) {
	confirmed, confirmError := service.prompter.Confirm(createPromptConstant)
	if confirmError != nil {
		return KeySkipped, fmt.Errorf(promptErrorTemplateConstant, confirmError)
	}
	if !confirmed {
		service.reporter.Printf(keySkippedMessageConstant)
		return KeySkipped, nil
	}

	email, emailFound := service.provider.Read(executionContext, gitconfig.UserEmailKeyConstant)
	if !emailFound {
		enteredEmail, askError := service.prompter.Ask(emailPromptConstant)
		if askError != nil {
			return KeySkipped, fmt.Errorf(promptErrorTemplateConstant, askError)
		}
		email = enteredEmail
	}

	_ = service.executor.Run(executionContext, execshell.ShellCommand{
		Name: execshell.CommandSSHKeygen,
		Details: execshell.CommandDetails{
			Arguments: []string{keyTypeFlagConstant, service.options.KeyType, commentFlagConstant, email},
		},
	})
	service.reporter.Printf(keyGeneratedMessageConstant)
	return KeyGenerated, nil
}
