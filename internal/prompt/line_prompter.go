package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/quickrepo/internal/shared"
)

const (
	affirmativeShortAnswerConstant = "y"
	affirmativeLongAnswerConstant  = "yes"
	menuOptionTemplateConstant     = "  [%s] %s\n"
	menuSelectionMarkerConstant    = "→ "
	lineBreakConstant              = "\n"
)

// IOPrompter reads line-based answers from an io.Reader and writes prompts to an io.Writer.
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets affirmative responses (y/yes).
func (prompter *IOPrompter) Confirm(prompt string) (bool, error) {
	response, readError := prompter.Ask(prompt)
	if readError != nil {
		return false, readError
	}

	switch strings.ToLower(response) {
	case affirmativeShortAnswerConstant, affirmativeLongAnswerConstant:
		return true, nil
	default:
		return false, nil
	}
}

// Ask writes the prompt and returns the trimmed response. End of input yields an empty answer.
func (prompter *IOPrompter) Ask(prompt string) (string, error) {
	if writeError := prompter.write(prompt); writeError != nil {
		return "", writeError
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return "", readError
	}
	return strings.TrimSpace(response), nil
}

// Choose prints a numbered menu below the prompt and returns the raw trimmed answer.
func (prompter *IOPrompter) Choose(prompt string, options []shared.PromptOption) (string, error) {
	var menuBuilder strings.Builder
	menuBuilder.WriteString(prompt)
	menuBuilder.WriteString(lineBreakConstant)
	for _, option := range options {
		fmt.Fprintf(&menuBuilder, menuOptionTemplateConstant, option.Key, option.Label)
	}
	menuBuilder.WriteString(menuSelectionMarkerConstant)
	return prompter.Ask(menuBuilder.String())
}

func (prompter *IOPrompter) write(prompt string) error {
	if prompter.writer == nil {
		return nil
	}
	_, writeError := io.WriteString(prompter.writer, prompt)
	return writeError
}
