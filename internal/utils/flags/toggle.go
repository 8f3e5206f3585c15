package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleUsageEmptyTemplate               = "`%s`"
	toggleUsageFullTemplate                = "`%s` %s"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleAnnotationKeyConstant            = "quickrepo_toggle"
	longFlagPrefixConstant                 = "--"
	flagValueSeparatorConstant             = "="
)

var toggleLiterals = map[string]bool{
	toggleTrueCanonicalValue:  true,
	"yes":                     true,
	"on":                      true,
	"1":                       true,
	"t":                       true,
	"y":                       true,
	toggleFalseCanonicalValue: false,
	"no":                      false,
	"off":                     false,
	"0":                       false,
	"f":                       false,
	"n":                       false,
}

// AddToggleFlag registers a boolean flag that also accepts yes/no style values.
// A bare flag means true.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	flagSet.Var(newToggleFlagValue(defaultValue, target), name, formatToggleUsage(usage, defaultValue))

	registeredFlag := flagSet.Lookup(name)
	if registeredFlag == nil {
		return
	}
	registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
	if registeredFlag.Annotations == nil {
		registeredFlag.Annotations = map[string][]string{}
	}
	registeredFlag.Annotations[toggleAnnotationKeyConstant] = []string{toggleTrueCanonicalValue}
}

// NormalizeToggleArguments rewrites "--flag value" into "--flag=value" for toggle flags of the
// flag set, so the value is not mistaken for a positional argument.
func NormalizeToggleArguments(flagSet *pflag.FlagSet, arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		currentArgument := arguments[argumentIndex]
		if currentArgument == longFlagPrefixConstant {
			normalized = append(normalized, arguments[argumentIndex:]...)
			break
		}

		nextIndex := argumentIndex + 1
		if isBareToggle(flagSet, currentArgument) && nextIndex < len(arguments) && isToggleLiteral(arguments[nextIndex]) {
			normalized = append(normalized, currentArgument+flagValueSeparatorConstant+arguments[nextIndex])
			argumentIndex = nextIndex
			continue
		}

		normalized = append(normalized, currentArgument)
	}

	return normalized
}

func isBareToggle(flagSet *pflag.FlagSet, argument string) bool {
	if flagSet == nil || !strings.HasPrefix(argument, longFlagPrefixConstant) {
		return false
	}
	flagName := strings.TrimPrefix(argument, longFlagPrefixConstant)
	if len(flagName) == 0 || strings.Contains(flagName, flagValueSeparatorConstant) {
		return false
	}
	registeredFlag := flagSet.Lookup(flagName)
	if registeredFlag == nil {
		return false
	}
	_, annotated := registeredFlag.Annotations[toggleAnnotationKeyConstant]
	return annotated
}

func isToggleLiteral(value string) bool {
	_, known := toggleLiterals[strings.ToLower(strings.TrimSpace(value))]
	return known
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageFullTemplate, placeholder, trimmedDescription)
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || !value.currentValue {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return "bool"
}

func parseToggleValue(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	parsedValue, known := toggleLiterals[normalizedValue]
	if !known {
		return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	return parsedValue, nil
}
