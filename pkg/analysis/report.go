package analysis

import "time"

// Report contains pre-computed views of a formatting run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Files lists every discovered file with its outcome.
	Files []FileEntry `json:"files"`

	// Problems is the flat list of problems for detailed output.
	Problems []ProblemEntry `json:"problems,omitempty"`

	// ByRule groups problems by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Status is the outcome of one file.
type Status string

const (
	StatusOK        Status = "ok"
	StatusChanged   Status = "changed"
	StatusFormatted Status = "formatted"
	StatusSkipped   Status = "skipped"
	StatusError     Status = "error"
)

// FileEntry is the outcome of a single file.
type FileEntry struct {
	Path      string `json:"path"`
	Status    Status `json:"status"`
	Problems  int    `json:"problems"`
	Backup    bool   `json:"backup,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
	Additions int    `json:"additions,omitempty"`
	Deletions int    `json:"deletions,omitempty"`
	Diff      string `json:"diff,omitempty"`
}

// ProblemEntry represents a single problem in the report.
type ProblemEntry struct {
	FilePath    string `json:"filePath"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`

	// Source is the original text of StartLine, for context output.
	Source string `json:"-"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files             int `json:"filesChecked"`
	FilesChanged      int `json:"filesChanged"`
	FilesWritten      int `json:"filesWritten"`
	FilesSkipped      int `json:"filesSkipped"`
	FilesErrored      int `json:"filesErrored"`
	FilesWithProblems int `json:"filesWithProblems"`
	Problems          int `json:"totalProblems"`
	Additions         int `json:"additions"`
	Deletions         int `json:"deletions"`
}

// HasChanges returns true if any file needed formatting.
func (t Totals) HasChanges() bool {
	return t.FilesChanged > 0
}

// HasProblems returns true if there are any problems.
func (t Totals) HasProblems() bool {
	return t.Problems > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	Rule     string   `json:"rule"`
	Problems int      `json:"problems"`
	Files    []string `json:"files,omitempty"`
}
