package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/quickrepo/internal/gitconfig"
	"github.com/temirov/quickrepo/internal/shared"
)

const (
	missingIdentityMessageConstant     = "➤ No Git username/email found. Let's set them up!\n"
	usernamePromptConstant             = "Enter your Git username: "
	emailPromptConstant                = "Enter your Git email address: "
	identityConfiguredTemplateConstant = "✅ Git global username and email set: %s / %s\n\n"
	identityPresentTemplateConstant    = "➤ Git user already set: %s / %s\n\n"
	identityPromptErrorTemplate        = "identity prompt failed: %w"
	identityWriteErrorTemplate         = "unable to store %s: %w"
	providerMissingMessageConstant     = "identity configuration provider not configured"
	prompterMissingMessageConstant     = "identity prompter not configured"
)

// ErrProviderNotConfigured indicates the service was constructed without a configuration provider.
var ErrProviderNotConfigured = errors.New(providerMissingMessageConstant)

// ErrPrompterNotConfigured indicates the service was constructed without a prompter.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// Identity is the global git author.
type Identity struct {
	Username string
	Email    string
}

// ServiceDependencies enumerates collaborators required by Service.
type ServiceDependencies struct {
	Provider gitconfig.Provider
	Prompter shared.Prompter
	Reporter shared.Reporter
}

// Service bootstraps the global git identity and default branch.
type Service struct {
	provider gitconfig.Provider
	prompter shared.Prompter
	reporter shared.Reporter
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Provider == nil {
		return nil, ErrProviderNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Service{provider: dependencies.Provider, prompter: dependencies.Prompter, reporter: reporter}, nil
}

// EnsureIdentity returns the configured identity, prompting for both fields when either is missing.
func (service *Service) EnsureIdentity(executionContext context.Context) (Identity, error) {
	username, usernameFound := service.provider.Read(executionContext, gitconfig.UserNameKeyConstant)
	email, emailFound := service.provider.Read(executionContext, gitconfig.UserEmailKeyConstant)
	if usernameFound && emailFound {
		service.reporter.Printf(identityPresentTemplateConstant, username, email)
		return Identity{Username: username, Email: email}, nil
	}

	service.reporter.Printf(missingIdentityMessageConstant)
	enteredUsername, usernameError := service.prompter.Ask(usernamePromptConstant)
	if usernameError != nil {
		return Identity{}, fmt.Errorf(identityPromptErrorTemplate, usernameError)
	}
	enteredEmail, emailError := service.prompter.Ask(emailPromptConstant)
	if emailError != nil {
		return Identity{}, fmt.Errorf(identityPromptErrorTemplate, emailError)
	}

	if writeError := service.provider.Write(executionContext, gitconfig.UserNameKeyConstant, enteredUsername); writeError != nil {
		return Identity{}, fmt.Errorf(identityWriteErrorTemplate, gitconfig.UserNameKeyConstant, writeError)
	}
	if writeError := service.provider.Write(executionContext, gitconfig.UserEmailKeyConstant, enteredEmail); writeError != nil {
		return Identity{}, fmt.Errorf(identityWriteErrorTemplate, gitconfig.UserEmailKeyConstant, writeError)
	}
	service.reporter.Printf(identityConfiguredTemplateConstant, enteredUsername, enteredEmail)

	// Simulated writes leave the configuration untouched, so the entered values stand in.
	resolvedIdentity := Identity{Username: enteredUsername, Email: enteredEmail}
	if storedUsername, found := service.provider.Read(executionContext, gitconfig.UserNameKeyConstant); found {
		resolvedIdentity.Username = storedUsername
	}
	if storedEmail, found := service.provider.Read(executionContext, gitconfig.UserEmailKeyConstant); found {
		resolvedIdentity.Email = storedEmail
	}
	return resolvedIdentity, nil
}
