package logging

// Field names for structured log entries.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Formatting run.
	FieldStage    = "stage"
	FieldRule     = "rule"
	FieldRules    = "rules"
	FieldTokens   = "tokens"
	FieldElapsed  = "elapsed"
	FieldPreset   = "preset"
	FieldProblems = "problems"

	// Runner statistics.
	FieldJobs            = "jobs"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
)
