package runner

import "github.com/yaklabco/phpfmt/pkg/format"

// FileOutcome is the result of one file. Exactly one of Result and Error
// is set.
type FileOutcome struct {
	Path   string
	Result *format.PipelineResult
	Error  error
}

// Stats totals a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files changed on disk while being formatted.
	FilesSkipped int
	FilesErrored int
	FilesChanged int
	FilesWritten int

	FilesWithProblems int
	ProblemsTotal     int
	ProblemsByRule    map[string]int
}

// Result holds every file outcome of a run, sorted by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasChanges reports whether any file needed formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasProblems reports whether any rule reported a problem.
func (r *Result) HasProblems() bool {
	return r != nil && r.Stats.ProblemsTotal > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{ProblemsByRule: make(map[string]int)}
}

// add records outcome and updates the totals.
func (r *Result) add(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	pr := outcome.Result
	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case pr == nil:
		return
	}

	s := &r.Stats
	s.FilesProcessed++
	s.FilesSkipped += count(pr.Skipped)
	s.FilesChanged += count(pr.Changed)
	s.FilesWritten += count(pr.Written)

	if pr.Result == nil || len(pr.Problems) == 0 {
		return
	}
	s.FilesWithProblems++
	s.ProblemsTotal += len(pr.Problems)
	for _, p := range pr.Problems {
		s.ProblemsByRule[p.Rule]++
	}
}

func count(b bool) int {
	if b {
		return 1
	}
	return 0
}
