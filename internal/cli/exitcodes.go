package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/phpfmt/internal/configloader"
	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/runner"
)

// Exit codes for phpfmt, following sysexits(3) where one applies.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnformatted indicates a check found files that need formatting
	// or reported problems.
	ExitUnformatted = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates invalid configuration or unparsable input.
	ExitDataError = 65

	// ExitInternalError indicates an internal error, including output that
	// does not survive a second formatting pass.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUnformatted is returned when a check finds files that need formatting.
	ErrUnformatted = errors.New("files need formatting")

	// ErrFilesFailed is returned when some files could not be formatted.
	ErrFilesFailed = errors.New("some files could not be formatted")
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf(format, args...)}
}

// ExitCode returns the exit code for an error returned by a command.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return classifyError(err)
}

// classifyError maps formatter, pipeline and configuration errors to
// exit codes.
func classifyError(err error) int {
	switch {
	case errors.Is(err, format.ErrFileNotFound),
		errors.Is(err, format.ErrPermissionDenied),
		errors.Is(err, format.ErrWriteFailure):
		return ExitIOError
	case errors.Is(err, format.ErrUnstable):
		return ExitInternalError
	case configloader.IsValidationError(err),
		errors.Is(err, config.ErrInvalid),
		errors.Is(err, format.ErrSyntax),
		errors.Is(err, format.ErrUnknownToken),
		errors.Is(err, format.ErrFormatFailure):
		return ExitDataError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only signals an exit code and needs no
// log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrUnformatted) || errors.Is(err, ErrFilesFailed)
}

// ExitCodeFromResult determines the exit code for a run. File errors take
// precedence, the most severe class winning; in check mode, files that
// need formatting or have problems yield ExitUnformatted.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		code := ExitSuccess
		for _, outcome := range result.Files {
			if outcome.Error != nil {
				code = max(code, classifyError(outcome.Error))
			}
		}
		return code
	}

	if check && (result.HasChanges() || result.HasProblems()) {
		return ExitUnformatted
	}
	return ExitSuccess
}
