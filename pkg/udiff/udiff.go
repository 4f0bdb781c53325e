// Package udiff renders the changes a formatting run made as a unified diff.
package udiff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines kept around each change.
const contextLines = 3

// noNewline follows a line that is not terminated by a newline.
const noNewline = `\ No newline at end of file`

// LineKind says whether a diff line was kept, inserted or deleted.
type LineKind int

const (
	Context LineKind = iota
	Insert
	Delete
)

// Line is one line of a hunk. Text excludes the line terminator.
// NoNewline marks the last line of a file that has no final newline.
type Line struct {
	Kind      LineKind
	Text      string
	NoNewline bool
}

// Hunk is a run of changes with surrounding context. Start lines are
// 1-based; an empty range starts at the line before it.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Diff is the unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute returns the diff from before to after, or nil when they are equal.
func Compute(path string, before, after []byte) *Diff {
	if string(before) == string(after) {
		return nil
	}

	a, b := splitLines(before), splitLines(after)
	d := &Diff{Path: path}

	matcher := difflib.NewMatcher(a, b)
	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		first, last := group[0], group[len(group)-1]
		hunk := Hunk{
			OldStart: rangeStart(first.I1, last.I2),
			OldLines: last.I2 - first.I1,
			NewStart: rangeStart(first.J1, last.J2),
			NewLines: last.J2 - first.J1,
		}
		for _, op := range group {
			if op.Tag == 'e' {
				hunk.Lines = appendLines(hunk.Lines, Context, a[op.I1:op.I2])
				continue
			}
			hunk.Lines = appendLines(hunk.Lines, Delete, a[op.I1:op.I2])
			hunk.Lines = appendLines(hunk.Lines, Insert, b[op.J1:op.J2])
			d.Deletions += op.I2 - op.I1
			d.Additions += op.J2 - op.J1
		}
		d.Hunks = append(d.Hunks, hunk)
	}
	return d
}

// splitLines splits content after each newline, so that a final line with
// and without its terminator compare as different lines.
func splitLines(content []byte) []string {
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func appendLines(dst []Line, kind LineKind, src []string) []Line {
	for _, s := range src {
		text, terminated := strings.CutSuffix(s, "\n")
		dst = append(dst, Line{Kind: kind, Text: text, NoNewline: !terminated})
	}
	return dst
}

func rangeStart(begin, end int) int {
	if begin == end {
		return begin
	}
	return begin + 1
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format with ---/+++ file headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n", formatRange(h.OldStart, h.OldLines), formatRange(h.NewStart, h.NewLines))
		for _, line := range h.Lines {
			sb.WriteByte(" +-"[line.Kind])
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
			if line.NoNewline {
				sb.WriteString(noNewline + "\n")
			}
		}
	}
	return sb.String()
}

func formatRange(start, n int) string {
	if n == 1 {
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, n)
}
