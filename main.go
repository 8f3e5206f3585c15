package main

import (
	"fmt"
	"os"

	"github.com/temirov/quickrepo/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the quickrepo command-line application.
func main() {
	executionError := cli.Execute()
	exitStatus, reportError := cli.ExitStatus(executionError)
	if reportError {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(exitStatus)
}
