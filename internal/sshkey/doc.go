// Package sshkey checks for an SSH public key and offers to generate one.
package sshkey
