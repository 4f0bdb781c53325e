package format_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	_ "github.com/yaklabco/phpfmt/pkg/format/rules"
	"github.com/yaklabco/phpfmt/pkg/fsutil"
	"github.com/yaklabco/phpfmt/pkg/token"
)

const (
	messy = "<?php\nif($a){\necho 1+1;\n}\n"
	clean = "<?php\nif ($a) {\n    echo 1 + 1;\n}\n"
)

func newFormatter(t *testing.T) *format.Formatter {
	t.Helper()
	f, err := format.New(config.NewConfig())
	require.NoError(t, err)
	return f
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		configure func(*config.Config)
	}{
		{"unknown rule", func(c *config.Config) { c.EnableRules = []string{"no-such-rule"} }},
		{"unknown preset", func(c *config.Config) { c.Preset = "nope" }},
		{"bad heredoc mode", func(c *config.Config) { c.HeredocIndent = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.NewConfig()
			tt.configure(cfg)
			_, err := format.New(cfg)
			require.ErrorIs(t, err, format.ErrConfig)
		})
	}
}

func TestFormatter_FormatSource(t *testing.T) {
	t.Parallel()

	res, err := newFormatter(t).FormatSource(context.Background(), "a.php", []byte(messy))
	require.NoError(t, err)
	assert.Equal(t, clean, res.Text)
	assert.Empty(t, res.Problems)

	last := res.Document.At(res.Document.Len() - 2)
	assert.Equal(t, "}", last.Text)
	assert.Equal(t, 4, last.OutputLine)
	assert.Equal(t, 1, last.OutputColumn)
}

func TestFormatter_KeepsCRLF(t *testing.T) {
	t.Parallel()

	crlf := func(s string) string { return strings.ReplaceAll(s, "\n", "\r\n") }
	f := newFormatter(t)

	res, err := f.FormatSource(context.Background(), "a.php", []byte(crlf(messy)))
	require.NoError(t, err)
	assert.Equal(t, crlf(clean), res.Text)

	check, err := f.Check(context.Background(), "a.php", []byte(res.Text))
	require.NoError(t, err)
	assert.True(t, check.Stable)
	assert.False(t, check.Changed)
}

func TestFormatter_SyntaxErrors(t *testing.T) {
	t.Parallel()

	f := newFormatter(t)
	for _, src := range []string{
		"<?php\nif ($a) {\n",
		"<?php\nfoo(]);\n",
		"<?php\n$s = <<<EOT\nnever closed\n",
	} {
		_, err := f.FormatSource(context.Background(), "bad.php", []byte(src))
		require.ErrorIs(t, err, format.ErrSyntax, src)
	}
}

func TestFormatter_UnknownToken(t *testing.T) {
	t.Parallel()

	_, err := newFormatter(t).Format(context.Background(), "x.php", []token.Token{
		{Kind: token.OpenTag, Text: "<?php"},
		{Kind: token.Invalid, Text: "?"},
	})
	require.ErrorIs(t, err, format.ErrUnknownToken)
}

func TestFormatter_Check(t *testing.T) {
	t.Parallel()

	res, err := newFormatter(t).Check(context.Background(), "a.php", []byte(messy))
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, res.Stable)
	assert.Equal(t, res.Text, res.Second)
}

func TestFormatter_Concurrent(t *testing.T) {
	t.Parallel()

	f := newFormatter(t)
	done := make(chan string, 8)
	for range 8 {
		go func() {
			res, err := f.FormatSource(context.Background(), "a.php", []byte(messy))
			if err != nil {
				done <- err.Error()
				return
			}
			done <- res.Text
		}()
	}
	for range 8 {
		assert.Equal(t, clean, <-done)
	}
}

func TestPipeline_ProcessFile_CheckOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.php")
	require.NoError(t, os.WriteFile(path, []byte(messy), 0o644))

	opts := format.DefaultPipelineOptions()
	opts.Diff = true
	result, err := format.NewPipeline(newFormatter(t)).ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.False(t, result.Written)
	assert.Equal(t, "needs formatting", result.Summary())
	require.NotNil(t, result.Diff)
	assert.True(t, strings.HasPrefix(result.Diff.String(), "--- a/"+strings.TrimPrefix(path, "/")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, messy, string(data))
}

func TestPipeline_ProcessFile_Write(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.php")
	require.NoError(t, os.WriteFile(path, []byte(messy), 0o644))

	opts := format.DefaultPipelineOptions()
	opts.Write = true
	opts.Verify = true
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := format.NewPipeline(newFormatter(t)).ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.True(t, result.BackupCreated)
	assert.Equal(t, "formatted (backup created)", result.Summary())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, clean, string(data))

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, messy, string(backup))
}

func TestPipeline_ProcessFile_Unchanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.php")
	require.NoError(t, os.WriteFile(path, []byte(clean), 0o644))

	opts := format.DefaultPipelineOptions()
	opts.Write = true
	result, err := format.NewPipeline(newFormatter(t)).ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.False(t, result.Written)
	assert.Equal(t, "ok", result.Summary())
}

func TestPipeline_ProcessFile_Errors(t *testing.T) {
	t.Parallel()

	p := format.NewPipeline(newFormatter(t))

	_, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.php"), format.DefaultPipelineOptions())
	require.ErrorIs(t, err, format.ErrFileNotFound)
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, err = p.ProcessContent(context.Background(), "bad.php", []byte("<?php (;"), format.DefaultPipelineOptions())
	require.ErrorIs(t, err, format.ErrFormatFailure)
	require.ErrorIs(t, err, format.ErrSyntax)
}

func TestPipeline_ProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := format.NewPipeline(newFormatter(t)).ProcessContent(ctx, "a.php", []byte(messy), format.DefaultPipelineOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestBackupConfigFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Backups.Enabled = true
	cfg.Backups.Mode = "sidecar"
	assert.True(t, format.BackupConfigFromConfig(cfg).Enabled)

	cfg.NoBackups = true
	assert.False(t, format.BackupConfigFromConfig(cfg).Enabled)
}
