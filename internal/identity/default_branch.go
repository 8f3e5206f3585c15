package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/quickrepo/internal/gitconfig"
	"github.com/temirov/quickrepo/internal/shared"
)

const (
	currentBranchTemplateConstant       = "🔧 Current global default branch is: %s\n"
	unsetBranchDescriptionConstant      = "master (default)"
	defaultBranchPromptTemplateConstant = "Would you like to set '%s' as your default branch globally? [y/n]: "
	defaultBranchUpdatedTemplate        = "✅ Default branch updated to '%s'.\n\n"
	defaultBranchPromptErrorTemplate    = "default branch prompt failed: %w"
	defaultBranchWriteErrorTemplate     = "unable to store %s: %w"
)

// BranchOutcome describes what EnsureDefaultBranch did.
type BranchOutcome int

// Possible default branch outcomes.
const (
	BranchAlreadyPreferred BranchOutcome = iota
	BranchUpdated
	BranchLeftUnchanged
)

// EnsureDefaultBranch offers to set init.defaultBranch to the preferred name when it differs.
func (service *Service) EnsureDefaultBranch(executionContext context.Context, preferredBranch string) (BranchOutcome, error) {
	targetBranch := strings.TrimSpace(preferredBranch)
	if len(targetBranch) == 0 {
		targetBranch = shared.MainBranchNameConstant
	}

	currentBranch, _ := service.provider.Read(executionContext, gitconfig.DefaultBranchKeyConstant)
	if currentBranch == targetBranch {
		return BranchAlreadyPreferred, nil
	}

	currentDescription := currentBranch
	if len(currentDescription) == 0 {
		currentDescription = unsetBranchDescriptionConstant
	}
	service.reporter.Printf(currentBranchTemplateConstant, currentDescription)

	confirmed, promptError := service.prompter.Confirm(fmt.Sprintf(defaultBranchPromptTemplateConstant, targetBranch))
	if promptError != nil {
		return BranchLeftUnchanged, fmt.Errorf(defaultBranchPromptErrorTemplate, promptError)
	}
	if !confirmed {
		return BranchLeftUnchanged, nil
	}

	if writeError := service.provider.Write(executionContext, gitconfig.DefaultBranchKeyConstant, targetBranch); writeError != nil {
		return BranchLeftUnchanged, fmt.Errorf(defaultBranchWriteErrorTemplate, gitconfig.DefaultBranchKeyConstant, writeError)
	}
	service.reporter.Printf(defaultBranchUpdatedTemplate, targetBranch)
	return BranchUpdated, nil
}
