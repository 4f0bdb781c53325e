// Package configloader resolves the effective phpfmt configuration from
// configuration files, PHPFMT_* environment variables and command-line
// overrides.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/fsutil"
)

const configFileMode = 0o644

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// WorkingDir starts the project config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It is always read when set.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv replaces os.Getenv.
	Getenv func(string) string

	// Override runs after every other source.
	Override func(*config.Config)
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	Warnings []string
}

// source is one configuration file layer.
type source struct {
	kind string
	path string
	skip bool
}

func (o LoadOptions) sources(paths *ConfigPaths) []source {
	return []source{
		{kind: "system", path: paths.System, skip: o.IgnoreSystemConfig},
		{kind: "user", path: paths.User, skip: o.IgnoreUserConfig},
		{kind: "project", path: paths.Project, skip: o.IgnoreProjectConfig},
		{kind: "explicit", path: paths.Explicit},
	}
}

// Load builds the configuration. Later sources override earlier ones:
//
//	defaults < system < user < project < --config < PHPFMT_* < Override
//
// The project layer is the nearest .phpfmt.yml or the extra.phpfmt section
// of the project's composer.json.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths, Config: config.NewConfig()}
	for _, src := range opts.sources(paths) {
		if src.skip || src.path == "" {
			continue
		}
		if result.Config, err = overlayFile(ctx, result.Config, src.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.kind, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		getenv := opts.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		if err := loadFromEnv(result.Config, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.Override != nil {
		opts.Override(result.Config)
	}

	validation := Validate(result.Config)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	return result, nil
}

// overlayFile applies the file at path on top of base. For composer.json
// only the extra.phpfmt section is used.
func overlayFile(ctx context.Context, base *config.Config, path string) (*config.Config, error) {
	data, _, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if filepath.Base(path) == composerFile {
		if data, err = composerSection(data); err != nil {
			return nil, &ValidationError{FilePath: path, Message: err.Error()}
		}
	}

	cfg, err := base.Overlay(data)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}

// WriteTemplate writes a configuration template to path, refusing to
// replace an existing file unless force is set.
func WriteTemplate(ctx context.Context, path string, opts config.TemplateOptions, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if err := fsutil.WriteFile(ctx, path, content, configFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
