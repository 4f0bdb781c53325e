// Package analysis turns a runner result into the views reporters render.
package analysis

import (
	"bytes"
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Files:     []FileEntry{},
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	byRule := make(map[string]*RuleAnalysis)
	ruleFiles := make(map[string]map[string]bool)

	for _, outcome := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(outcome.Path, opts.WorkingDir)
		entry := FileEntry{Path: displayPath, Status: StatusOK}

		if outcome.Error != nil {
			entry.Status = StatusError
			entry.Error = outcome.Error.Error()
			report.Totals.FilesErrored++
			report.Files = append(report.Files, entry)
			continue
		}

		pr := outcome.Result
		if pr == nil {
			report.Files = append(report.Files, entry)
			continue
		}

		entry.Status = fileStatus(pr)
		entry.Backup = pr.BackupCreated
		entry.Reason = pr.SkipReason
		switch entry.Status {
		case StatusSkipped:
			report.Totals.FilesSkipped++
		case StatusFormatted:
			report.Totals.FilesWritten++
		}
		if pr.Changed {
			report.Totals.FilesChanged++
		}

		if pr.Diff != nil {
			entry.Additions = pr.Diff.Additions
			entry.Deletions = pr.Diff.Deletions
			report.Totals.Additions += pr.Diff.Additions
			report.Totals.Deletions += pr.Diff.Deletions
			if opts.IncludeDiffs {
				entry.Diff = pr.Diff.String()
			}
		}

		if pr.Result != nil && len(pr.Problems) > 0 {
			report.Totals.FilesWithProblems++
			lines := bytes.Split(pr.Original, []byte("\n"))

			for _, p := range pr.Problems {
				report.Totals.Problems++
				entry.Problems++

				ra, ok := byRule[p.Rule]
				if !ok {
					ra = &RuleAnalysis{Rule: p.Rule}
					byRule[p.Rule] = ra
					ruleFiles[p.Rule] = make(map[string]bool)
				}
				ra.Problems++
				ruleFiles[p.Rule][displayPath] = true

				if opts.IncludeProblems {
					report.Problems = append(report.Problems, problemEntry(displayPath, p, lines))
				}
			}
		}

		report.Files = append(report.Files, entry)
	}

	if opts.IncludeByRule {
		report.ByRule = buildByRule(byRule, ruleFiles, opts)
	}

	return report
}

func fileStatus(pr *format.PipelineResult) Status {
	switch {
	case pr.Skipped:
		return StatusSkipped
	case pr.Written:
		return StatusFormatted
	case pr.Changed:
		return StatusChanged
	default:
		return StatusOK
	}
}

func problemEntry(path string, p format.Problem, lines [][]byte) ProblemEntry {
	entry := ProblemEntry{
		FilePath:    path,
		Rule:        p.Rule,
		Message:     p.Text(),
		StartLine:   p.Line(),
		StartColumn: p.Column(),
		EndLine:     p.EndLine(),
	}
	if n := entry.StartLine; n > 0 && n <= len(lines) {
		entry.Source = string(bytes.TrimRight(lines[n-1], "\r"))
	}
	return entry
}

func buildByRule(byRule map[string]*RuleAnalysis, ruleFiles map[string]map[string]bool, opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(byRule))
	for rule, ra := range byRule {
		for f := range ruleFiles[rule] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}

	slices.SortFunc(result, func(left, right RuleAnalysis) int {
		if opts.SortBy == SortByAlpha {
			return cmp.Compare(left.Rule, right.Rule)
		}
		c := cmp.Compare(left.Problems, right.Problems)
		if opts.SortDesc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(left.Rule, right.Rule)
		}
		return c
	})
	return result
}
