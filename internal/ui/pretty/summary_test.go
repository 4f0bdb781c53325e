package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/phpfmt/internal/ui/pretty"
	"github.com/yaklabco/phpfmt/pkg/analysis"
)

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(analysis.Totals{Files: 5})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:")
	assert.Contains(t, result, "5")
	assert.Contains(t, result, "All files formatted")
	assert.NotContains(t, result, "Files changed:")
}

func TestFormatSummary_CheckMode(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(analysis.Totals{
		Files:        10,
		FilesChanged: 3,
		Problems:     2,
	})

	assert.Contains(t, result, "Files changed:")
	assert.Contains(t, result, "Problems:")
	assert.Contains(t, result, "Some files need formatting")
}

func TestFormatSummary_WriteMode(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(analysis.Totals{
		Files:        10,
		FilesChanged: 3,
		FilesWritten: 3,
	})

	assert.Contains(t, result, "Files written:")
	assert.Contains(t, result, "All files formatted")
}

func TestFormatSummary_Errors(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(analysis.Totals{Files: 2, FilesErrored: 1, FilesSkipped: 1})

	assert.Contains(t, result, "Files failed:")
	assert.Contains(t, result, "Files skipped:")
	assert.Contains(t, result, "Formatting failed")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats analysis.Totals
		want  string
	}{
		{
			name:  "clean",
			stats: analysis.Totals{Files: 4},
			want:  "All files formatted (4 files checked)\n",
		},
		{
			name:  "check",
			stats: analysis.Totals{Files: 4, FilesChanged: 1},
			want:  "1 file needs formatting (4 files checked)\n",
		},
		{
			name:  "written",
			stats: analysis.Totals{Files: 1, FilesChanged: 2, FilesWritten: 2},
			want:  "2 files formatted (1 file checked)\n",
		},
		{
			name:  "problems and errors",
			stats: analysis.Totals{Files: 3, Problems: 1, FilesWithProblems: 1, FilesErrored: 2},
			want:  "1 problem in 1 file, 2 files failed (3 files checked)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
