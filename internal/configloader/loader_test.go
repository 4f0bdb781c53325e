package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/phpfmt/pkg/config"
	_ "github.com/yaklabco/phpfmt/pkg/format/rules" // Register rules
)

// projectDir returns a temp directory that ends the upward config search.
func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.HeredocIndent != config.HeredocMixed {
		t.Errorf("expected heredoc_indent %q, got %q", config.HeredocMixed, result.Config.HeredocIndent)
	}
	if !result.Config.TrailingCommas {
		t.Error("expected trailing_commas to default to true")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ".phpfmt.yml"), `
indent: tabs
trailing_commas: false
disable_rules:
  - align-comments
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Indent != config.IndentTabs {
		t.Errorf("expected indent tabs, got %q", cfg.Indent)
	}
	if cfg.TrailingCommas {
		t.Error("explicit false in config file did not override the default")
	}
	if cfg.TabSize != 4 {
		t.Errorf("unset tab_size should keep the default, got %d", cfg.TabSize)
	}
	if len(cfg.DisableRules) != 1 || cfg.DisableRules[0] != "align-comments" {
		t.Errorf("unexpected disable_rules %v", cfg.DisableRules)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected one loaded file, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, "phpfmt.yaml"), "tab_size: 2\n")
	sub := filepath.Join(tmpDir, "src", "Http")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.TabSize != 2 {
		t.Errorf("expected tab_size 2 from parent config, got %d", result.Config.TabSize)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ".phpfmt.yml"), "tab_size: 2\nsort_imports: none\n")
	explicit := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, explicit, "tab_size: 8\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit
	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.TabSize != 8 {
		t.Errorf("explicit config should win, got tab_size %d", result.Config.TabSize)
	}
	if result.Config.SortImports != config.SortNone {
		t.Errorf("project value should survive, got %q", result.Config.SortImports)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_EnvAndOverride(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ".phpfmt.yml"), "tab_size: 2\n")

	env := map[string]string{
		"PHPFMT_TAB_SIZE":       "3",
		"PHPFMT_ALIGN_COMMENTS": "true",
		"PHPFMT_IGNORE":         "vendor/**, storage/**",
	}
	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.Getenv = func(key string) string { return env[key] }
	opts.Override = func(c *config.Config) { c.TabSize = 6 }

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.TabSize != 6 {
		t.Errorf("CLI override should win, got tab_size %d", cfg.TabSize)
	}
	if !cfg.AlignComments {
		t.Error("expected PHPFMT_ALIGN_COMMENTS to enable align_comments")
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "storage/**" {
		t.Errorf("unexpected ignore %v", cfg.Ignore)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Parallel()

	opts := isolated(projectDir(t))
	opts.IgnoreEnv = false
	opts.Getenv = func(key string) string {
		if key == "PHPFMT_TAB_SIZE" {
			return "wide"
		}
		return ""
	}

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "PHPFMT_TAB_SIZE") {
		t.Fatalf("expected env error naming PHPFMT_TAB_SIZE, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad value", "heredoc_indent: sideways\n", "heredoc_indent"},
		{"unknown key", "flavor: gfm\n", "flavor"},
		{"unknown rule", "disable_rules: [no-such-rule]\n", "no-such-rule"},
		{"bad glob", "ignore: ['[unclosed']\n", "invalid glob"},
		{"unknown preset", "preset: pear\n", "unknown preset"},
		{"bad backup mode", "backups:\n  mode: cloud\n", "backup mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := projectDir(t)
			writeFile(t, filepath.Join(tmpDir, ".phpfmt.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsValidationError(err) {
				t.Errorf("expected a validation error, got %T", err)
			}
			if !errors.Is(err, config.ErrInvalid) {
				t.Errorf("expected error to wrap config.ErrInvalid: %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_ConflictingRulesWarn(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ".phpfmt.yml"),
		"enable_rules: [align-comments]\ndisable_rules: [align-comments]\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "both enabled and disabled") {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(projectDir(t)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOverlayFile_SequencesReplace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.yml")
	second := filepath.Join(dir, "second.yml")
	writeFile(t, first, "tab_size: 2\nignore: [a]\n")
	writeFile(t, second, "ignore: [b, c]\none_line_bodies: false\n")

	cfg, err := overlayFile(context.Background(), config.NewConfig(), first)
	if err != nil {
		t.Fatalf("overlayFile(first) error = %v", err)
	}
	cfg, err = overlayFile(context.Background(), cfg, second)
	if err != nil {
		t.Fatalf("overlayFile(second) error = %v", err)
	}
	if cfg.TabSize != 2 {
		t.Errorf("expected tab_size 2, got %d", cfg.TabSize)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "b" {
		t.Errorf("sequences should replace, got %v", cfg.Ignore)
	}
	if cfg.OneLineBodies {
		t.Error("expected one_line_bodies false")
	}
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".phpfmt.yml")
	if err := WriteTemplate(context.Background(), path, config.TemplateOptions{}, false); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}
	if err := WriteTemplate(context.Background(), path, config.TemplateOptions{}, false); err == nil {
		t.Error("expected refusal to overwrite")
	}
	if err := WriteTemplate(context.Background(), path, config.TemplateOptions{Full: true}, true); err != nil {
		t.Fatalf("forced WriteTemplate() error = %v", err)
	}

	if _, err := overlayFile(context.Background(), config.NewConfig(), path); err != nil {
		t.Errorf("template does not load back: %v", err)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envVars) {
		t.Fatalf("ListEnvVars() returned %d variables, want %d", len(vars), len(envVars))
	}
	found := false
	for i, v := range vars {
		if i > 0 && vars[i-1].Name >= v.Name {
			t.Errorf("not sorted at %s", v.Name)
		}
		if v.Name == "PHPFMT_HEREDOC_INDENT" {
			found = v.Key == "heredoc_indent"
		}
	}
	if !found {
		t.Error("missing PHPFMT_HEREDOC_INDENT with key heredoc_indent")
	}
}

func TestLoad_ComposerSection(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "composer.json"), `{
    "name": "acme/app",
    "extra": {
        "phpfmt": {
            "indent": "tabs",
            "sort_imports": "depth"
        }
    }
}`)
	sub := filepath.Join(tmpDir, "src")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Indent != config.IndentTabs {
		t.Errorf("expected indent tabs from composer.json, got %q", result.Config.Indent)
	}
	if result.Config.SortImports != config.SortDepth {
		t.Errorf("expected sort_imports depth, got %q", result.Config.SortImports)
	}
}

func TestFindProjectConfig_ComposerRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		composer string
		dotfile  bool
		want     string
	}{
		{"no section stops the search", `{"name": "acme/app"}`, false, ""},
		{"section is used", `{"extra": {"phpfmt": {"tab_size": 2}}}`, false, "composer.json"},
		{"dotfile wins over composer", `{"extra": {"phpfmt": {"tab_size": 2}}}`, true, ".phpfmt.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "composer.json"), tt.composer)
			if tt.dotfile {
				writeFile(t, filepath.Join(dir, ".phpfmt.yml"), "tab_size: 8\n")
			}

			got, err := FindProjectConfig(context.Background(), dir)
			if err != nil {
				t.Fatalf("FindProjectConfig() error = %v", err)
			}
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no config, got %s", got)
				}
				return
			}
			if filepath.Base(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
