// Package shared declares the collaborators that quickrepo setup steps depend on.
package shared
