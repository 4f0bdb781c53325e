// Package runner finds PHP files and formats them concurrently.
package runner

import "github.com/yaklabco/phpfmt/pkg/config"

// Options selects the files of a run.
type Options struct {
	// Paths are files or directories. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and ExcludeGlobs. Empty means the
	// process working directory.
	WorkingDir string

	// ExcludeGlobs come from --ignore and are added to Config.Ignore.
	ExcludeGlobs []string

	// IncludeVendor walks third-party directories such as vendor/.
	IncludeVendor bool

	FollowSymlinks bool

	// Jobs caps concurrent workers. Zero or less means runtime.NumCPU.
	Jobs int

	Config *config.Config
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// excludes merges ExcludeGlobs with the configured ignore patterns.
func (o Options) excludes() []string {
	out := append([]string(nil), o.ExcludeGlobs...)
	if o.Config != nil {
		out = append(out, o.Config.Ignore...)
	}
	return out
}
