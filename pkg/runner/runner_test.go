package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	_ "github.com/yaklabco/phpfmt/pkg/format/rules" // Register rules
	"github.com/yaklabco/phpfmt/pkg/runner"
)

const (
	messy = "<?php\nif($a){\necho 1;\n}\n"
	clean = "<?php\nif ($a) {\n    echo 1;\n}\n"
)

func newRunner(t *testing.T, opts format.PipelineOptions) *runner.Runner {
	t.Helper()
	f, err := format.New(config.NewConfig())
	if err != nil {
		t.Fatalf("format.New() error = %v", err)
	}
	return runner.New(format.NewPipeline(f), opts)
}

func TestNew(t *testing.T) {
	t.Parallel()

	f, err := format.New(config.NewConfig())
	if err != nil {
		t.Fatalf("format.New() error = %v", err)
	}
	pipeline := format.NewPipeline(f)
	r := runner.New(pipeline, format.DefaultPipelineOptions())

	if r.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, format.DefaultPipelineOptions()).Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("expected empty result, got %+v", result.Stats)
	}
	if result.HasChanges() || result.HasProblems() || result.HasErrors() {
		t.Error("empty result should report nothing")
	}
}

func TestRunner_Run_CheckOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.php": messy,
		"b.php": clean,
		"c.php": "<?php\nfoo(;\n",
	})

	result, err := newRunner(t, format.DefaultPipelineOptions()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := result.Stats
	if stats.FilesDiscovered != 3 || stats.FilesProcessed != 2 || stats.FilesErrored != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.FilesChanged != 1 || stats.FilesWritten != 0 {
		t.Errorf("expected one changed, unwritten file: %+v", stats)
	}
	if !result.HasChanges() || !result.HasErrors() {
		t.Error("expected changes and errors")
	}

	if got := filepath.Base(result.Files[2].Path); got != "c.php" {
		t.Errorf("outcomes out of order: %s", got)
	}
	if !errors.Is(result.Files[2].Error, format.ErrSyntax) {
		t.Errorf("expected syntax error, got %v", result.Files[2].Error)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a.php"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != messy {
		t.Error("check-only run modified the file")
	}
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.php": messy, "sub/b.php": messy})

	opts := format.DefaultPipelineOptions()
	opts.Write = true
	result, err := newRunner(t, opts).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       1,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesWritten != 2 {
		t.Errorf("FilesWritten = %d, want 2", result.Stats.FilesWritten)
	}

	for _, name := range []string{"a.php", "sub/b.php"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(data) != clean {
			t.Errorf("%s = %q, want %q", name, data, clean)
		}
	}
}

func TestRunner_Run_Problems(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.php": "<?php\nif ($a) {\n\t  echo 1;\n}\n"})

	result, err := newRunner(t, format.DefaultPipelineOptions()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.HasProblems() {
		t.Fatal("expected a mixed indentation problem")
	}
	if result.Stats.ProblemsByRule["mixed-indentation"] != 1 {
		t.Errorf("unexpected problems %v", result.Stats.ProblemsByRule)
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".php"] = messy
	}
	writeTree(t, dir, files)

	run := func(jobs int) []string {
		result, err := newRunner(t, format.DefaultPipelineOptions()).Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		var out []string
		for _, f := range result.Files {
			out = append(out, f.Path+"\x00"+f.Result.Text)
		}
		return out
	}

	serial, parallel := run(1), run(8)
	if len(serial) != len(parallel) {
		t.Fatalf("length mismatch %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Errorf("outcome %d differs between serial and parallel runs", i)
		}
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.php": messy})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, format.DefaultPipelineOptions()).Run(ctx, runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var r *runner.Result
	if r.HasChanges() || r.HasProblems() || r.HasErrors() {
		t.Error("nil result should report nothing")
	}
}
