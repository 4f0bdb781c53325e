package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ConfigPaths lists the configuration files found for a working directory.
// Empty fields mean no file was found.
type ConfigPaths struct {
	// System is /etc/phpfmt/config.yaml or its Windows equivalent.
	System string

	// User is $XDG_CONFIG_HOME/phpfmt/config.yaml.
	User string

	// Project is the nearest .phpfmt.yml (or variant) above the working
	// directory, or a composer.json whose extra.phpfmt section configures
	// phpfmt.
	Project string

	// Explicit comes from --config.
	Explicit string
}

// composerFile marks the root of a PHP project and may carry configuration
// under extra.phpfmt.
const composerFile = "composer.json"

//nolint:gochecknoglobals // read-only lookup tables
var (
	projectConfigFiles = []string{".phpfmt.yml", ".phpfmt.yaml", "phpfmt.yml", "phpfmt.yaml"}
	rootMarkers        = []string{".git", ".hg", ".svn", composerFile}
)

// DiscoverPaths finds the system, user and project configuration files that
// apply to workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), "config.yaml", "config.yml"),
		User:    firstFile(userConfigDir(), "config.yaml", "config.yml"),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/phpfmt"
	}
	if dir := os.Getenv("ProgramData"); dir != "" {
		return filepath.Join(dir, "phpfmt")
	}
	return `C:\ProgramData\phpfmt`
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "phpfmt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "phpfmt")
}

// FindProjectConfig searches startDir and its parents for a project config
// file. The search ends at the first directory holding a VCS directory or a
// composer.json, at the home directory, or at the filesystem root. A
// composer.json at the project root is returned when no dedicated file was
// found and it has an extra.phpfmt section.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles...); path != "" {
			return path, nil
		}
		if isProjectRoot(dir) {
			composer := filepath.Join(dir, composerFile)
			if hasComposerSection(composer) {
				return composer, nil
			}
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home {
			return "", nil
		}
		dir = parent
	}
}

func isProjectRoot(dir string) bool {
	for _, marker := range rootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that exists as a regular file in dir.
func firstFile(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// composerManifest is the part of composer.json phpfmt reads. JSON is valid
// YAML, so the YAML decoder handles it and the section can be re-encoded
// for the regular overlay.
type composerManifest struct {
	Extra struct {
		Phpfmt yaml.Node `yaml:"phpfmt"`
	} `yaml:"extra"`
}

// composerSection returns the extra.phpfmt section of a composer.json as a
// YAML document, or nil when there is none.
func composerSection(data []byte) ([]byte, error) {
	var manifest composerManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", composerFile, err)
	}
	if manifest.Extra.Phpfmt.Kind == 0 {
		return nil, nil
	}
	out, err := yaml.Marshal(&manifest.Extra.Phpfmt)
	if err != nil {
		return nil, fmt.Errorf("encode extra.phpfmt: %w", err)
	}
	return out, nil
}

func hasComposerSection(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	section, err := composerSection(data)
	return err == nil && section != nil
}
