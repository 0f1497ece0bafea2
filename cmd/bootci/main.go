package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/bootci/internal/statistics"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Report produced
	ExitError        = 1 // Runtime or configuration error
	ExitInvalidInput = 2 // Unusable sample or rejected run parameters
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var inputErr *statistics.InputError
	var validationErr *statistics.ValidationError
	if errors.As(err, &inputErr) || errors.As(err, &validationErr) {
		return ExitInvalidInput
	}
	return ExitError
}
