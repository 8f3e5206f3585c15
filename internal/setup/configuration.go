package setup

import (
	"strings"
	"time"

	"github.com/temirov/quickrepo/internal/githubprobe"
	"github.com/temirov/quickrepo/internal/gitignore"
	"github.com/temirov/quickrepo/internal/prompt"
	"github.com/temirov/quickrepo/internal/shared"
)

const (
	defaultBranchKeyConstant          = "default_branch"
	remoteNameKeyConstant             = "remote_name"
	remoteHostKeyConstant             = "remote_host"
	commitMessageKeyConstant          = "commit_message"
	forceSyncMessageKeyConstant       = "force_sync_message"
	scratchClonePathKeyConstant       = "scratch_clone_path"
	dryRunKeyConstant                 = "dry_run"
	promptModeKeyConstant             = "prompt_mode"
	sshSectionKeyConstant             = "ssh"
	sshDirectoryKeyConstant           = "directory"
	sshKeyTypeKeyConstant             = "key_type"
	sshPublicKeySuffixKeyConstant     = "public_key_suffix"
	probeSectionKeyConstant           = "probe"
	probeModeKeyConstant              = "mode"
	probeTimeoutKeyConstant           = "timeout"
	probeTokenKeyConstant             = "token"
	configurationKeySeparatorConstant = "."
	defaultRemoteHostConstant         = "github.com"
	defaultCommitMessageConstant      = "Initial commit"
	defaultForceSyncMessageConstant   = "Force sync to GitHub"
	defaultScratchClonePathConstant   = "/tmp/quickrepo-temp-clone"
	defaultSSHDirectoryConstant       = "~/.ssh"
	defaultSSHKeyTypeConstant         = "ed25519"
	defaultSSHPublicKeySuffixConstant = ".pub"
	defaultProbeTimeoutConstant       = 10 * time.Second
)

// Configuration captures the settings of a setup run.
type Configuration struct {
	DefaultBranch    string                 `mapstructure:"default_branch"`
	RemoteName       string                 `mapstructure:"remote_name"`
	RemoteHost       string                 `mapstructure:"remote_host"`
	CommitMessage    string                 `mapstructure:"commit_message"`
	ForceSyncMessage string                 `mapstructure:"force_sync_message"`
	ScratchClonePath string                 `mapstructure:"scratch_clone_path"`
	DryRun           bool                   `mapstructure:"dry_run"`
	PromptMode       string                 `mapstructure:"prompt_mode"`
	SSH              SSHConfiguration       `mapstructure:"ssh"`
	Probe            ProbeConfiguration     `mapstructure:"probe"`
	Gitignore        GitignoreConfiguration `mapstructure:"gitignore"`
}

// SSHConfiguration describes where SSH keys live and which key type is generated.
type SSHConfiguration struct {
	Directory       string `mapstructure:"directory"`
	KeyType         string `mapstructure:"key_type"`
	PublicKeySuffix string `mapstructure:"public_key_suffix"`
}

// ProbeConfiguration selects and tunes the remote existence check.
type ProbeConfiguration struct {
	Mode    string        `mapstructure:"mode"`
	Timeout time.Duration `mapstructure:"timeout"`
	Token   string        `mapstructure:"token"`
}

// GitignoreConfiguration lists the ignore presets offered to the user, in menu order.
type GitignoreConfiguration struct {
	Presets []gitignore.Preset `mapstructure:"presets"`
}

// DefaultConfiguration returns baseline values for a setup run.
func DefaultConfiguration() Configuration {
	return Configuration{
		DefaultBranch:    shared.MainBranchNameConstant,
		RemoteName:       shared.OriginRemoteNameConstant,
		RemoteHost:       defaultRemoteHostConstant,
		CommitMessage:    defaultCommitMessageConstant,
		ForceSyncMessage: defaultForceSyncMessageConstant,
		ScratchClonePath: defaultScratchClonePathConstant,
		DryRun:           false,
		PromptMode:       prompt.PromptModeAutomatic,
		SSH: SSHConfiguration{
			Directory:       defaultSSHDirectoryConstant,
			KeyType:         defaultSSHKeyTypeConstant,
			PublicKeySuffix: defaultSSHPublicKeySuffixConstant,
		},
		Probe: ProbeConfiguration{
			Mode:    githubprobe.ModeWeb,
			Timeout: defaultProbeTimeoutConstant,
		},
		Gitignore: GitignoreConfiguration{Presets: gitignore.DefaultPresets()},
	}
}

// DefaultConfigurationValues produces Viper defaults for the scalar setup settings under rootKey.
// Presets are not included because Viper cannot merge list defaults with file values.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		joinKey(rootKey, defaultBranchKeyConstant):                             defaults.DefaultBranch,
		joinKey(rootKey, remoteNameKeyConstant):                                defaults.RemoteName,
		joinKey(rootKey, remoteHostKeyConstant):                                defaults.RemoteHost,
		joinKey(rootKey, commitMessageKeyConstant):                             defaults.CommitMessage,
		joinKey(rootKey, forceSyncMessageKeyConstant):                          defaults.ForceSyncMessage,
		joinKey(rootKey, scratchClonePathKeyConstant):                          defaults.ScratchClonePath,
		joinKey(rootKey, dryRunKeyConstant):                                    defaults.DryRun,
		joinKey(rootKey, promptModeKeyConstant):                                defaults.PromptMode,
		joinKey(rootKey, sshSectionKeyConstant, sshDirectoryKeyConstant):       defaults.SSH.Directory,
		joinKey(rootKey, sshSectionKeyConstant, sshKeyTypeKeyConstant):         defaults.SSH.KeyType,
		joinKey(rootKey, sshSectionKeyConstant, sshPublicKeySuffixKeyConstant): defaults.SSH.PublicKeySuffix,
		joinKey(rootKey, probeSectionKeyConstant, probeModeKeyConstant):        defaults.Probe.Mode,
		joinKey(rootKey, probeSectionKeyConstant, probeTimeoutKeyConstant):     defaults.Probe.Timeout,
		joinKey(rootKey, probeSectionKeyConstant, probeTokenKeyConstant):       defaults.Probe.Token,
	}
}

// Sanitize trims values and restores defaults for blank or non-positive settings.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.DefaultBranch = valueOrDefault(configuration.DefaultBranch, defaults.DefaultBranch)
	sanitized.RemoteName = valueOrDefault(configuration.RemoteName, defaults.RemoteName)
	sanitized.RemoteHost = valueOrDefault(configuration.RemoteHost, defaults.RemoteHost)
	sanitized.CommitMessage = valueOrDefault(configuration.CommitMessage, defaults.CommitMessage)
	sanitized.ForceSyncMessage = valueOrDefault(configuration.ForceSyncMessage, defaults.ForceSyncMessage)
	sanitized.ScratchClonePath = valueOrDefault(configuration.ScratchClonePath, defaults.ScratchClonePath)
	sanitized.PromptMode = valueOrDefault(configuration.PromptMode, defaults.PromptMode)
	sanitized.SSH.Directory = valueOrDefault(configuration.SSH.Directory, defaults.SSH.Directory)
	sanitized.SSH.KeyType = valueOrDefault(configuration.SSH.KeyType, defaults.SSH.KeyType)
	sanitized.SSH.PublicKeySuffix = valueOrDefault(configuration.SSH.PublicKeySuffix, defaults.SSH.PublicKeySuffix)
	sanitized.Probe.Mode = strings.ToLower(valueOrDefault(configuration.Probe.Mode, defaults.Probe.Mode))
	sanitized.Probe.Token = strings.TrimSpace(configuration.Probe.Token)
	if configuration.Probe.Timeout <= 0 {
		sanitized.Probe.Timeout = defaults.Probe.Timeout
	}

	sanitized.Gitignore.Presets = sanitizePresets(configuration.Gitignore.Presets)
	if len(sanitized.Gitignore.Presets) == 0 {
		sanitized.Gitignore.Presets = defaults.Gitignore.Presets
	}

	return sanitized
}

func sanitizePresets(presets []gitignore.Preset) []gitignore.Preset {
	sanitized := make([]gitignore.Preset, 0, len(presets))
	for _, preset := range presets {
		presetName := strings.ToLower(strings.TrimSpace(preset.Name))
		if len(presetName) == 0 || len(preset.Patterns) == 0 {
			continue
		}
		sanitized = append(sanitized, gitignore.Preset{Name: presetName, Patterns: append([]string{}, preset.Patterns...)})
	}
	return sanitized
}

func valueOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}

func joinKey(segments ...string) string {
	nonEmptySegments := make([]string, 0, len(segments))
	for _, segment := range segments {
		if len(segment) > 0 {
			nonEmptySegments = append(nonEmptySegments, segment)
		}
	}
	return strings.Join(nonEmptySegments, configurationKeySeparatorConstant)
}
