package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/reporter"
	"github.com/yaklabco/phpfmt/pkg/runner"
	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/udiff"
)

const (
	before = "<?php\nif($a){\n\t  $b=1;\n}\n"
	after  = "<?php\nif ($a) {\n    $b = 1;\n}\n"
)

// sampleResult has one clean file, one needing formatting with a problem,
// and one that failed.
func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:   "/work/clean.php",
				Result: &format.PipelineResult{Result: &format.Result{Text: "<?php\n"}, Original: []byte("<?php\n")},
			},
			{
				Path: "/work/src/messy.php",
				Result: &format.PipelineResult{
					Result: &format.Result{
						Text: after,
						Problems: []format.Problem{{
							Rule:    "mixed-indentation",
							Message: "line mixes tabs and spaces",
							Start:   &token.Token{Line: 3, Column: 4},
						}},
					},
					Original: []byte(before),
					Changed:  true,
					Diff:     udiff.Compute("/work/src/messy.php", []byte(before), []byte(after)),
				},
			},
			{Path: "/work/broken.php", Error: format.ErrSyntax},
		},
	}
}

func render(t *testing.T, f reporter.Format, mutate func(*reporter.Options)) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Format = f
	opts.Color = "never"
	opts.WorkingDir = "/work"
	if mutate != nil {
		mutate(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := reporter.New(reporter.Options{Format: "sarif", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestReporter_ReturnsOutstandingCount(t *testing.T) {
	_, count := render(t, reporter.FormatJSON, nil)
	// One file needs formatting, one problem.
	assert.Equal(t, 2, count)
}

func TestTextRenderer(t *testing.T) {
	out, _ := render(t, reporter.FormatText, nil)

	assert.Contains(t, out, "src/messy.php: needs formatting")
	assert.Contains(t, out, "broken.php: error: ")
	assert.Contains(t, out, "src/messy.php (1 problem)")
	assert.Contains(t, out, "src/messy.php:3:4  line mixes tabs and spaces  (mixed-indentation)")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "1 file needs formatting")
	assert.NotContains(t, out, "clean.php")
}

func TestTextRenderer_Quiet(t *testing.T) {
	out, _ := render(t, reporter.FormatText, func(o *reporter.Options) {
		o.ShowContext = false
		o.ShowSummary = false
		o.ListFiles = false
	})

	assert.NotContains(t, out, "needs formatting")
	assert.NotContains(t, out, "^")
	assert.Contains(t, out, "(mixed-indentation)")
}

func TestTextRenderer_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatText, Color: "never", ShowSummary: true})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No PHP files found.")
}

func TestJSONRenderer(t *testing.T) {
	out, _ := render(t, reporter.FormatJSON, nil)

	var decoded struct {
		Version string `json:"version"`
		Files   []struct {
			Path   string `json:"path"`
			Status string `json:"status"`
			Diff   string `json:"diff"`
		} `json:"files"`
		Problems []struct {
			FilePath  string `json:"filePath"`
			Rule      string `json:"rule"`
			StartLine int    `json:"startLine"`
		} `json:"problems"`
		Summary struct {
			FilesChecked  int `json:"filesChecked"`
			FilesChanged  int `json:"filesChanged"`
			FilesErrored  int `json:"filesErrored"`
			TotalProblems int `json:"totalProblems"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "ok", decoded.Files[0].Status)
	assert.Equal(t, "changed", decoded.Files[1].Status)
	assert.NotEmpty(t, decoded.Files[1].Diff)
	assert.Equal(t, "error", decoded.Files[2].Status)
	require.Len(t, decoded.Problems, 1)
	assert.Equal(t, "src/messy.php", decoded.Problems[0].FilePath)
	assert.Equal(t, 3, decoded.Problems[0].StartLine)
	assert.Equal(t, 3, decoded.Summary.FilesChecked)
	assert.Equal(t, 1, decoded.Summary.FilesChanged)
	assert.Equal(t, 1, decoded.Summary.FilesErrored)
	assert.Equal(t, 1, decoded.Summary.TotalProblems)
}

func TestJSONRenderer_Compact(t *testing.T) {
	out, _ := render(t, reporter.FormatJSON, func(o *reporter.Options) { o.Compact = true })

	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestDiffRenderer(t *testing.T) {
	out, _ := render(t, reporter.FormatDiff, nil)

	assert.Contains(t, out, "diff --git a/src/messy.php b/src/messy.php\n--- a/src/messy.php\n+++ b/src/messy.php\n@@")
	assert.Equal(t, 1, strings.Count(out, "--- a/"))
	assert.Contains(t, out, "-if($a){")
	assert.Contains(t, out, "+if ($a) {")
	assert.Contains(t, out, "1 file changed")
	assert.Contains(t, out, "broken.php: error: ")
}

func TestSummaryRenderer(t *testing.T) {
	out, _ := render(t, reporter.FormatSummary, nil)

	assert.Contains(t, out, "Files")
	assert.Contains(t, out, "src/messy.php")
	assert.Contains(t, out, "needs formatting")
	assert.Contains(t, out, "Rules")
	assert.Contains(t, out, "mixed-indentation")
	assert.Contains(t, out, "Formatting failed")
	assert.NotContains(t, out, "clean.php")
}

func TestSummaryRenderer_Clean(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "a.php", Result: &format.PipelineResult{Result: &format.Result{}}},
	}}
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "All files formatted (1 file checked)\n", buf.String())
}
