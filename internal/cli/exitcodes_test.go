package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/phpfmt/internal/configloader"
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/runner"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", usageError("bad flag"), ExitInvalidUsage},
		{"explicit", &ExitError{Code: ExitUnformatted, Err: ErrUnformatted}, ExitUnformatted},
		{"wrapped explicit", fmt.Errorf("outer: %w", &ExitError{Code: ExitIOError, Err: errors.New("x")}), ExitIOError},
		{"config", &configloader.ValidationError{Message: "bad"}, ExitDataError},
		{"syntax", fmt.Errorf("%w: %w", format.ErrFormatFailure, format.ErrSyntax), ExitDataError},
		{"not found", fmt.Errorf("%w: a.php", format.ErrFileNotFound), ExitIOError},
		{"write", fmt.Errorf("%w: disk full", format.ErrWriteFailure), ExitIOError},
		{"unstable", fmt.Errorf("%w: a.php", format.ErrUnstable), ExitInternalError},
		{"unknown", errors.New("boom"), ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	changed := runner.Result{Stats: runner.Stats{FilesChanged: 1}}
	problems := runner.Result{Stats: runner.Stats{ProblemsTotal: 2}}
	failed := runner.Result{
		Files: []runner.FileOutcome{
			{Path: "a.php", Error: fmt.Errorf("%w: %w", format.ErrFormatFailure, format.ErrSyntax)},
			{Path: "b.php", Error: fmt.Errorf("%w: b.php", format.ErrPermissionDenied)},
		},
		Stats: runner.Stats{FilesChanged: 1},
	}

	assert.Equal(t, ExitSuccess, ExitCodeFromResult(nil, true))
	assert.Equal(t, ExitSuccess, ExitCodeFromResult(&runner.Result{}, true))
	assert.Equal(t, ExitUnformatted, ExitCodeFromResult(&changed, true))
	assert.Equal(t, ExitSuccess, ExitCodeFromResult(&changed, false))
	assert.Equal(t, ExitUnformatted, ExitCodeFromResult(&problems, true))
	assert.Equal(t, ExitIOError, ExitCodeFromResult(&failed, true))
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSilent(&ExitError{Code: ExitUnformatted, Err: ErrUnformatted}))
	assert.True(t, IsSilent(&ExitError{Code: ExitDataError, Err: ErrFilesFailed}))
	assert.False(t, IsSilent(usageError("x")))
}
