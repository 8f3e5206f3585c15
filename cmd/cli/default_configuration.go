package cli

import _ "embed"

//go:embed default_config.yaml
var embeddedSetupDefaults []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in quickrepo configuration
// (logging, setup defaults and the .gitignore presets) with its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), embeddedSetupDefaults...), configurationTypeConstant
}
