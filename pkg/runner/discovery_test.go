package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/runner"
)

// writeTree creates files (relative to dir) with the given contents.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func assertFiles(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d files %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"index.php": "<?php\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"index.php"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, files, []string{filepath.Join(dir, "index.php")})
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.php":             "<?php\n",
		"src/Kernel.php":        "<?php\n",
		"templates/page.phtml":  "<p><?= $x ?></p>\n",
		"bin/console":           "#!/usr/bin/env php\n<?php\n",
		"bin/build.sh":          "#!/bin/sh\n",
		"README.md":             "# readme\n",
		"vendor/acme/Lib.php":   "<?php\n",
		".cache/compiled.php":   "<?php\n",
		"node_modules/x/y.php":  "<?php\n",
		"src/.hidden.php":       "<?php\n",
		"public/assets/app.css": "body {}\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertFiles(t, relAll(t, dir, files), []string{
		"bin/console",
		"index.php",
		"src/Kernel.php",
		"templates/page.phtml",
	})
}

func TestDiscover_IncludeVendor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.php":               "<?php\n",
		"vendor/acme/Lib.php": "<?php\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, IncludeVendor: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, relAll(t, dir, files), []string{"a.php", "vendor/acme/Lib.php"})
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/A.php":              "<?php\n",
		"src/Generated/B.php":    "<?php\n",
		"tests/fixtures/bad.php": "<?php\n",
		"config.php":             "<?php\n",
	})

	cfg := config.NewConfig()
	cfg.Ignore = []string{"config.php"}

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"**/Generated/**", "tests/fixtures/**"},
		Config:       cfg,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, relAll(t, dir, files), []string{"src/A.php"})
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/A.php": "<?php\n", "src/B.php": "<?php\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"src", "src/A.php", "."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, relAll(t, dir, files), []string{"src/A.php", "src/B.php"})
}

func TestDiscover_ExplicitNonPHPFileSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"notes.txt": "hello\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"notes.txt"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.php": "<?php\n"})
	writeTree(t, outside, map[string]string{"b.php": "<?php\n"})
	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("directory symlink should not be followed by default, got %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with FollowSymlinks, got %v", files)
	}
}
