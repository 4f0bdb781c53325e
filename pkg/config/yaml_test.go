package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Ignore = []string{"vendor/**"}
		original.DisableRules = []string{"align-comments"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.DisableRules[0] = "changed"
		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, "align-comments", original.DisableRules[0])
	})

	t.Run("preserves scalar fields", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Indent = config.IndentTabs
		original.TabSize = 2
		original.HeredocIndent = config.HeredocHanging

		clone := original.Clone()
		assert.Equal(t, original, clone)
	})
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.SortImports = config.SortDepth
	original.AlignAssignments = true
	original.Ignore = []string{"vendor/**"}

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "sort_imports: depth")
	assert.NotContains(t, string(data), "jobs")

	parsed, err := (&config.Config{}).Overlay(data)
	require.NoError(t, err)
	assert.Equal(t, config.SortDepth, parsed.SortImports)
	assert.True(t, parsed.AlignAssignments)
	assert.Equal(t, []string{"vendor/**"}, parsed.Ignore)
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	cfg, err := base.Overlay([]byte("trailing_commas: false\nignore: [a]\n"))
	require.NoError(t, err)
	assert.False(t, cfg.TrailingCommas)
	assert.Equal(t, []string{"a"}, cfg.Ignore)
	assert.Equal(t, 4, cfg.TabSize)
	assert.True(t, base.TrailingCommas, "base must not change")

	same, err := base.Overlay(nil)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	_, err = base.Overlay([]byte("tab_size: [nope"))
	require.Error(t, err)

	_, err = base.Overlay([]byte("flavor: gfm\n"))
	require.Error(t, err)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# phpfmt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# phpfmt\n\nindent: spaces\n"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		configure func(*config.Config)
		wantErr   string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"bad indent", func(c *config.Config) { c.Indent = "both" }, "indent must be one of"},
		{"bad heredoc", func(c *config.Config) { c.HeredocIndent = "deep" }, "heredoc_indent"},
		{"bad sort", func(c *config.Config) { c.SortImports = "random" }, "sort_imports"},
		{"bad blanks", func(c *config.Config) { c.BlankLines = "squash" }, "blank_lines"},
		{"zero tab size", func(c *config.Config) { c.TabSize = 0 }, "tab_size"},
		{"huge tab size", func(c *config.Config) { c.TabSize = 17 }, "tab_size"},
		{"negative jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"bad format", func(c *config.Config) { c.Format = "xml" }, "output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.NewConfig()
			tt.configure(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIndentUnit(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "    ", cfg.IndentUnit())

	cfg.TabSize = 2
	assert.Equal(t, "  ", cfg.IndentUnit())

	cfg.Indent = config.IndentTabs
	assert.Equal(t, "\t", cfg.IndentUnit())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "heredoc_indent: mixed")
	assert.Contains(t, text, "# preset: psr12")

	parsed, err := config.NewConfig().Overlay(data)
	require.NoError(t, err)
	assert.Equal(t, config.HeredocMixed, parsed.HeredocIndent)
}

func TestGenerateTemplate_Full(t *testing.T) {
	saved := config.DefaultRuleInfoProvider
	t.Cleanup(func() { config.DefaultRuleInfoProvider = saved })
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return []config.RuleInfo{
			{Name: "zeta", Description: "Last rule.", Enabled: false},
			{Name: "alpha", Description: strings.Repeat("word ", 30), Enabled: true},
		}
	}

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	text := string(data)
	alpha := strings.Index(text, "#   alpha (on)")
	zeta := strings.Index(text, "#   zeta (off)")
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, zeta)
	assert.Less(t, alpha, zeta)

	for _, line := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, len(line), 78, line)
	}
}
