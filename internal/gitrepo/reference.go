package gitrepo

import (
	"strings"
)

const (
	defaultRemoteHostConstant     = "github.com"
	httpSchemePrefixConstant      = "http"
	invalidRemoteReferenceMessage = "Invalid remote format. Please enter 'username/repo.git' or full SSH URL."
)

// InvalidRemoteReferenceError indicates a remote reference that is neither SSH form nor owner/repo shorthand.
type InvalidRemoteReferenceError struct {
	Input string
}

// Error returns the guidance shown to the person who typed the reference.
func (referenceError InvalidRemoteReferenceError) Error() string {
	return invalidRemoteReferenceMessage
}

// SSHPrefix returns git@<host>: for the supplied host, defaulting to github.com.
func SSHPrefix(host string) string {
	return gitUserPrefixConstant + resolveHost(host) + sshPathDelimiterConstant
}

// NormalizeReference converts typed input into an SSH remote reference.
//
// Input already carrying the SSH prefix passes through unchanged. Input containing a slash
// and not starting with http is treated as owner/repo shorthand. Anything else is rejected.
func NormalizeReference(input string, host string) (string, error) {
	trimmedInput := strings.TrimSpace(input)
	sshPrefix := SSHPrefix(host)

	if strings.HasPrefix(trimmedInput, sshPrefix) {
		return trimmedInput, nil
	}
	if strings.Contains(trimmedInput, pathSeparatorConstant) && !strings.HasPrefix(trimmedInput, httpSchemePrefixConstant) {
		return sshPrefix + trimmedInput, nil
	}
	return "", InvalidRemoteReferenceError{Input: input}
}

// BrowsableURL converts git@<host>:owner/repository(.git) into https://<host>/owner/repository.
// References for another host or in any other form report false.
func BrowsableURL(reference string, host string) (string, bool) {
	if !strings.HasPrefix(reference, SSHPrefix(host)) {
		return "", false
	}
	remote, parseError := ParseRemoteURL(reference)
	if parseError != nil {
		return "", false
	}
	return remote.HTTPS(), true
}

func resolveHost(host string) string {
	trimmedHost := strings.TrimSpace(host)
	if len(trimmedHost) == 0 {
		return defaultRemoteHostConstant
	}
	return trimmedHost
}
