package analysis

// SortField orders the per-rule breakdown.
type SortField string

const (
	SortByCount SortField = "count"
	SortByAlpha SortField = "alpha"
)

// Options selects what Analyze includes in a Report.
type Options struct {
	IncludeProblems bool
	IncludeByRule   bool

	// IncludeDiffs copies each file's unified diff into its entry.
	IncludeDiffs bool

	SortBy   SortField
	SortDesc bool

	// WorkingDir makes report paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions includes everything, rules with the most problems first.
func DefaultOptions() Options {
	return Options{
		IncludeProblems: true,
		IncludeByRule:   true,
		IncludeDiffs:    true,
		SortBy:          SortByCount,
		SortDesc:        true,
	}
}
