package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/phpfmt/pkg/langdetect"
)

// headSize is how much of an extensionless file is read to look for a
// shebang or open tag.
const headSize = 256

// Discover returns the sorted, de-duplicated absolute paths of the PHP files
// named by opts. Directories are walked recursively, skipping hidden
// entries, excluded paths and, unless opts.IncludeVendor is set, vendor
// directories. A path that does not exist is an error wrapping
// os.ErrNotExist.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	w, err := newWalker(ctx, opts)
	if err != nil {
		return nil, err
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(w.workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if info.IsDir() {
			err = w.walk(path)
		} else {
			w.visitFile(path)
		}
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(w.files)
	return w.files, nil
}

// walker accumulates files across the input paths of one Discover call.
type walker struct {
	ctx      context.Context
	workDir  string
	excludes []string
	opts     Options

	seen  map[string]bool
	files []string
}

func newWalker(ctx context.Context, opts Options) (*walker, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes := opts.excludes()
	for i, pattern := range excludes {
		excludes[i] = filepath.ToSlash(pattern)
	}
	return &walker{
		ctx:      ctx,
		workDir:  workDir,
		excludes: excludes,
		opts:     opts,
		seen:     make(map[string]bool),
	}, nil
}

// visitFile adds path when it is a PHP file that is not excluded.
func (w *walker) visitFile(path string) {
	if w.seen[path] || w.excluded(path) || !isPHP(path) {
		return
	}
	w.seen[path] = true
	w.files = append(w.files, path)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := w.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(entry.Name(), ".")
		switch {
		case entry.IsDir():
			if hidden || w.excluded(path) || (!w.opts.IncludeVendor && langdetect.IsVendor(w.rel(path))) {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			return w.visitSymlink(path, hidden)
		case !hidden:
			w.visitFile(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

// visitSymlink adds a link to a PHP file, and walks a link to a directory
// when symlinks are followed. Broken links are skipped.
func (w *walker) visitSymlink(path string, hidden bool) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}
	if info.IsDir() {
		if !w.opts.FollowSymlinks || hidden || w.excluded(path) {
			return nil
		}
		// WalkDir does not descend into a symlinked root, so walk the target.
		return w.walk(target)
	}
	if !hidden {
		w.visitFile(path)
	}
	return nil
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// excluded reports whether the path relative to the working directory, or
// its base name for patterns without a slash, matches an exclude glob.
func (w *walker) excluded(path string) bool {
	rel := w.rel(path)
	base := filepath.Base(path)
	for _, pattern := range w.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}

// isPHP classifies path by name, reading the head of extensionless files
// for a php shebang or open tag.
func isPHP(path string) bool {
	var head []byte
	if filepath.Ext(path) == "" {
		head = readHead(path)
	}
	return langdetect.Detect(path, head) != langdetect.NotPHP
}

func readHead(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	buf := make([]byte, headSize)
	n, _ := io.ReadFull(f, buf)
	return buf[:n]
}
