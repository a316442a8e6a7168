package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"posreport/internal/pipeline"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error onto the documented process exit codes. Cobra's
// own parse failures surface as plain errors, so they are sniffed into the
// usage bucket here.
func exitCode(err error) int {
	if code := pipeline.ExitCode(err); code != pipeline.ExitInternal {
		return code
	}
	msg := err.Error()
	for _, marker := range []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"invalid argument",
		"required flag",
		"accepts ",
	} {
		if strings.Contains(msg, marker) {
			return pipeline.ExitUsage
		}
	}
	return pipeline.ExitInternal
}
