package main

import (
	"fmt"
	"os"

	"github.com/vladisnik/git-bare-sync/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the git-bare-sync command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
