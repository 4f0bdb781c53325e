package reporter

import (
	"io"
	"os"
)

const bufWriterSize = 64 << 10

// Options configures a Reporter.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is a --color mode: auto, always or never.
	Color string

	// ShowContext includes the source line under each problem.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ListFiles prints one line per file that needs or received formatting.
	ListFiles bool

	// Compact writes JSON on one line.
	Compact bool

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions writes colored text to stdout with context and summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		ListFiles:   true,
	}
}
