package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/temirov/quickrepo/internal/shared"
)

const (
	confirmationSuffixConstant   = "[y/n]"
	promptTerminatorConstant     = ":"
	selectOptionTemplateConstant = "[%s] %s"
	surveyPromptErrorTemplate    = "prompt %q interrupted: %w"
	promptModeAutomaticConstant  = "auto"
	promptModeLineConstant       = "line"
	promptModeTerminalConstant   = "terminal"
	unsupportedPromptModeMessage = "unsupported prompt mode"
	promptDecorationCharacterSet = "➤ "
)

// ErrUnsupportedPromptMode indicates an unknown prompt mode was configured.
var ErrUnsupportedPromptMode = errors.New(unsupportedPromptModeMessage)

// Supported prompt modes.
const (
	PromptModeAutomatic = promptModeAutomaticConstant
	PromptModeLine      = promptModeLineConstant
	PromptModeTerminal  = promptModeTerminalConstant
)

// SurveyPrompter renders prompts with terminal widgets.
type SurveyPrompter struct {
	input  *os.File
	output *os.File
	errors *os.File
}

// NewSurveyPrompter constructs a prompter bound to the supplied terminal files.
func NewSurveyPrompter(input *os.File, output *os.File, errorOutput *os.File) *SurveyPrompter {
	return &SurveyPrompter{input: input, output: output, errors: errorOutput}
}

// Confirm renders a yes/no question defaulting to no.
func (prompter *SurveyPrompter) Confirm(prompt string) (bool, error) {
	confirmed := false
	question := &survey.Confirm{Message: surveyMessage(prompt), Default: false}
	if askError := survey.AskOne(question, &confirmed, prompter.stdio()); askError != nil {
		return false, fmt.Errorf(surveyPromptErrorTemplate, question.Message, askError)
	}
	return confirmed, nil
}

// Ask renders a free-text input.
func (prompter *SurveyPrompter) Ask(prompt string) (string, error) {
	answer := ""
	question := &survey.Input{Message: surveyMessage(prompt)}
	if askError := survey.AskOne(question, &answer, prompter.stdio()); askError != nil {
		return "", fmt.Errorf(surveyPromptErrorTemplate, question.Message, askError)
	}
	return strings.TrimSpace(answer), nil
}

// Choose renders a selection list and returns the key of the chosen option.
func (prompter *SurveyPrompter) Choose(prompt string, options []shared.PromptOption) (string, error) {
	optionLabels := make([]string, 0, len(options))
	for _, option := range options {
		optionLabels = append(optionLabels, fmt.Sprintf(selectOptionTemplateConstant, option.Key, option.Label))
	}

	selectedLabel := ""
	question := &survey.Select{Message: surveyMessage(prompt), Options: optionLabels}
	if askError := survey.AskOne(question, &selectedLabel, prompter.stdio()); askError != nil {
		return "", fmt.Errorf(surveyPromptErrorTemplate, question.Message, askError)
	}

	for optionIndex, optionLabel := range optionLabels {
		if optionLabel == selectedLabel {
			return options[optionIndex].Key, nil
		}
	}
	return selectedLabel, nil
}

func (prompter *SurveyPrompter) stdio() survey.AskOpt {
	return survey.WithStdio(prompter.input, prompter.output, prompter.errors)
}

// surveyMessage strips line-prompt decorations that survey renders itself.
func surveyMessage(prompt string) string {
	message := strings.TrimSpace(prompt)
	message = strings.TrimLeft(message, promptDecorationCharacterSet)
	message = strings.TrimSuffix(message, promptTerminatorConstant)
	message = strings.TrimSpace(message)
	message = strings.TrimSuffix(message, confirmationSuffixConstant)
	message = strings.TrimSpace(message)
	message = strings.TrimSuffix(message, promptTerminatorConstant)
	return strings.TrimSpace(message)
}

// IsInteractiveTerminal reports whether both files are attached to a terminal.
func IsInteractiveTerminal(input *os.File, output *os.File) bool {
	if input == nil || output == nil {
		return false
	}
	return isTerminal(input) && isTerminal(output)
}

func isTerminal(file *os.File) bool {
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// NewConsolePrompter selects the prompter for the requested mode.
// The automatic mode uses terminal widgets only when both streams are terminals.
func NewConsolePrompter(mode string, input *os.File, output *os.File, errorOutput *os.File) (shared.Prompter, error) {
	normalizedMode := strings.ToLower(strings.TrimSpace(mode))
	switch normalizedMode {
	case "", promptModeAutomaticConstant:
		if IsInteractiveTerminal(input, output) {
			return NewSurveyPrompter(input, output, errorOutput), nil
		}
		return NewIOPrompter(input, output), nil
	case promptModeLineConstant:
		return NewIOPrompter(input, output), nil
	case promptModeTerminalConstant:
		return NewSurveyPrompter(input, output, errorOutput), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPromptMode, mode)
	}
}
