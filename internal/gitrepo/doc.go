// Package gitrepo interprets remote references and detects local repositories.
//
// Remote references typed by a person are normalized into SSH form, parsed into
// owner and repository components, and converted into browsable HTTPS addresses
// for existence probing.
package gitrepo
