package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/pkg/parser"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// Exit codes for gomdtree.
const (
	// ExitSuccess indicates every file was parsed (and matched, for check).
	ExitSuccess = 0

	// ExitFileErrors indicates at least one file could not be read or parsed.
	ExitFileErrors = 1

	// ExitDivergent indicates check found outlines that differ from the reference.
	ExitDivergent = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that only carry an exit status.
var (
	// ErrFilesFailed is returned when some files could not be parsed.
	ErrFilesFailed = errors.New("some files failed to parse")

	// ErrDivergent is returned when check finds divergent outlines.
	ErrDivergent = errors.New("outlines diverge from the reference")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage wraps invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitFileErrors
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, ErrDivergent):
		return ExitDivergent
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, parser.ErrInternal), errors.Is(err, parser.ErrInvalidTokens):
		return ExitInternalError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInvalidUsage
	}
}

// IsSignal reports whether err only signals an exit status and needs no log line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrDivergent)
}
