// Package githubprobe answers whether a remote repository already exists.
//
// Every failure, including network errors and timeouts, is reported as absence.
package githubprobe
