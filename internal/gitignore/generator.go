package gitignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/quickrepo/internal/shared"
)

const (
	fileNameConstant             = ".gitignore"
	skipChoiceConstant           = "skip"
	customChoiceConstant         = "custom"
	choicePromptTemplateConstant = "➤ Create .gitignore? Choose [%s]: "
	choiceSeparatorConstant      = "/"
	customInstructionsConstant   = "Enter custom ignore patterns (one per line, blank line to finish):\n"
	customPatternPromptConstant  = "> "
	createdMessageConstant       = "✅ .gitignore created.\n\n"
	dryRunWriteTemplateConstant  = "[DRY-RUN] Would write %s:\n%s"
	lineSeparatorConstant        = "\n"
	promptErrorTemplateConstant  = "gitignore prompt failed: %w"
	writeErrorTemplateConstant   = "unable to write %s: %w"
	filePermissionsConstant      = 0o644
)

// Preset is a named list of ignore patterns.
type Preset struct {
	Name     string   `mapstructure:"name"`
	Patterns []string `mapstructure:"patterns"`
}

// DefaultPresets returns the built-in presets in menu order.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "python", Patterns: []string{"*.pyc", "__pycache__/", ".venv/", "env/", "build/", "dist/", "*.egg-info/"}},
		{Name: "node", Patterns: []string{"node_modules/", "dist/", "*.log", "npm-debug.log*", ".env"}},
	}
}

// Result describes what Generate produced.
type Result struct {
	Choice   string
	Patterns []string
	Written  bool
}

// ServiceDependencies enumerates collaborators required by Generator.
type ServiceDependencies struct {
	FileSystem shared.FileSystem
	Prompter   shared.Prompter
	Reporter   shared.Reporter
}

// Generator asks for a preset and writes the ignore file.
type Generator struct {
	fileSystem shared.FileSystem
	prompter   shared.Prompter
	reporter   shared.Reporter
	presets    []Preset
	dryRun     bool
}

// NewGenerator constructs a generator. An empty preset list falls back to DefaultPresets.
func NewGenerator(dependencies ServiceDependencies, presets []Preset, dryRun bool) *Generator {
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	if len(presets) == 0 {
		presets = DefaultPresets()
	}
	return &Generator{
		fileSystem: dependencies.FileSystem,
		prompter:   dependencies.Prompter,
		reporter:   reporter,
		presets:    presets,
		dryRun:     dryRun,
	}
}

// Prompt renders the choice question listing every preset followed by custom and skip.
func (generator *Generator) Prompt() string {
	choices := make([]string, 0, len(generator.presets)+2)
	for _, preset := range generator.presets {
		choices = append(choices, preset.Name)
	}
	choices = append(choices, customChoiceConstant, skipChoiceConstant)
	return fmt.Sprintf(choicePromptTemplateConstant, strings.Join(choices, choiceSeparatorConstant))
}

// Generate asks for a preset and writes the file into the directory.
// Answers naming no preset collect custom patterns until a blank line.
func (generator *Generator) Generate(directory string) (Result, error) {
	answer, askError := generator.prompter.Ask(generator.Prompt())
	if askError != nil {
		return Result{}, fmt.Errorf(promptErrorTemplateConstant, askError)
	}
	choice := strings.ToLower(strings.TrimSpace(answer))
	if choice == skipChoiceConstant {
		return Result{Choice: skipChoiceConstant}, nil
	}

	patterns, known := generator.presetPatterns(choice)
	if !known {
		choice = customChoiceConstant
		customPatterns, collectError := generator.collectCustomPatterns()
		if collectError != nil {
			return Result{}, collectError
		}
		patterns = customPatterns
	}

	content := Render(patterns)
	targetPath := filepath.Join(directory, fileNameConstant)
	if generator.dryRun {
		generator.reporter.Printf(dryRunWriteTemplateConstant, targetPath, content)
	} else if writeError := generator.fileSystem.WriteFile(targetPath, []byte(content), filePermissionsConstant); writeError != nil {
		return Result{}, fmt.Errorf(writeErrorTemplateConstant, targetPath, writeError)
	}
	generator.reporter.Printf(createdMessageConstant)
	return Result{Choice: choice, Patterns: patterns, Written: !generator.dryRun}, nil
}

// Render joins the patterns with newlines and terminates the content with a newline.
func Render(patterns []string) string {
	return strings.Join(patterns, lineSeparatorConstant) + lineSeparatorConstant
}

func (generator *Generator) presetPatterns(choice string) ([]string, bool) {
	for _, preset := range generator.presets {
		if strings.EqualFold(preset.Name, choice) {
			return append([]string(nil), preset.Patterns...), true
		}
	}
	return nil, false
}

func (generator *Generator) collectCustomPatterns() ([]string, error) {
	generator.reporter.Printf(customInstructionsConstant)
	patterns := []string{}
	for {
		pattern, askError := generator.prompter.Ask(customPatternPromptConstant)
		if askError != nil {
			return nil, fmt.Errorf(promptErrorTemplateConstant, askError)
		}
		trimmedPattern := strings.TrimSpace(pattern)
		if len(trimmedPattern) == 0 {
			return patterns, nil
		}
		patterns = append(patterns, trimmedPattern)
	}
}
