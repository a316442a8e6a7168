package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for stage failures. Wrap tags errors with one of these
// so ExitCode can classify them at the process boundary.
var (
	ErrUsage         = errors.New("usage error")
	ErrInputNotFound = errors.New("input not found")
	ErrPartial       = errors.New("completed with warnings")
	ErrInternal      = errors.New("internal error")
)

// Process exit codes, matching the documented CLI contract.
const (
	ExitOK       = 0
	ExitUsage    = 1
	ExitNoInput  = 2
	ExitPartial  = 3
	ExitInternal = 64
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later exit-code classification.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit code the CLI should use.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrInputNotFound):
		return ExitNoInput
	case errors.Is(err, ErrPartial):
		return ExitPartial
	default:
		return ExitInternal
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
