// Package testsupport provides scripted collaborators shared by package tests.
package testsupport
