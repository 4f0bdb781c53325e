package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/fsutil"
	"github.com/yaklabco/phpfmt/pkg/udiff"
)

// Errors returned by Pipeline. Callers map them to exit codes.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrFormatFailure    = errors.New("format failure")
	ErrWriteFailure     = errors.New("write failure")

	// ErrUnstable means formatting the output a second time changed it.
	ErrUnstable = errors.New("formatting is not stable")
)

// PipelineResult is the outcome of running one file through a Pipeline.
type PipelineResult struct {
	// Result is the formatter output, nil for files skipped before formatting.
	*Result

	Path string

	// OriginalInfo snapshots the file as it was read.
	OriginalInfo *fsutil.Snapshot
	Original     []byte

	Changed bool

	// Diff is set for changed files when PipelineOptions.Diff is on.
	Diff *udiff.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary describes the result in a few words.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "formatted (backup created)"
	case pr.Written:
		return "formatted"
	case pr.Changed:
		return "needs formatting"
	case pr.Result != nil && len(pr.Problems) > 0:
		return "problems found"
	}
	return "ok"
}

// PipelineOptions controls what a Pipeline does after formatting.
type PipelineOptions struct {
	Write bool
	Diff  bool

	// Verify formats the output again and fails with ErrUnstable if the
	// second pass changes it.
	Verify bool

	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes before writing. Without
	// it only size and modification time are compared.
	StrictRaceDetection bool
}

// DefaultPipelineOptions checks files without writing them.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline runs a Formatter over files and writes the results safely.
type Pipeline struct {
	Formatter *Formatter
}

// NewPipeline returns a pipeline around f.
func NewPipeline(f *Formatter) *Pipeline {
	return &Pipeline{Formatter: f}
}

// ProcessFile reads path, formats it and, with opts.Write, replaces it.
// A file modified on disk while it was being formatted is skipped rather
// than overwritten.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	original, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, classifyReadError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = snap

	if opts.Write && result.Changed {
		if err := p.commit(ctx, result, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// commit backs up and rewrites the file behind result.
func (p *Pipeline) commit(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	snap := result.OriginalInfo

	stale, err := snap.Stale(ctx, opts.StrictRaceDetection)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if stale {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return nil
	}

	if opts.Backup.Enabled {
		if result.BackupCreated, err = opts.Backup.Save(ctx, snap, result.Original); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := fsutil.WriteFile(ctx, result.Path, []byte(result.Text), snap.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

// ProcessContent formats original as if it were read from path.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	formatted, err := p.Formatter.FormatSource(ctx, path, original)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatFailure, err)
	}
	result := &PipelineResult{
		Result:   formatted,
		Path:     path,
		Original: original,
		Changed:  formatted.Text != string(original),
	}
	if !result.Changed {
		return result, nil
	}

	if opts.Verify {
		again, err := p.Formatter.FormatSource(ctx, path, []byte(formatted.Text))
		switch {
		case err != nil:
			return nil, fmt.Errorf("%w: reformat %s: %w", ErrUnstable, path, err)
		case again.Text != formatted.Text:
			return nil, fmt.Errorf("%w: %s", ErrUnstable, path)
		}
	}
	if opts.Diff {
		result.Diff = udiff.Compute(path, original, []byte(formatted.Text))
	}
	return result, nil
}

func classifyReadError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// BackupConfigFromConfig derives backup settings from cfg. NoBackups wins
// over Backups.Enabled.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}
