// Package diag defines the diagnostic data model shared by every linting,
// purification, and transpilation entry point: spans, severities, fixes,
// and the Diagnostic/LintResult types that rules produce.
//
// Unlike the teacher repo's LSP-flavored Location (0-based, end-exclusive),
// spans here are 1-indexed and end-inclusive, matching how rule authors
// reason about source text: "line 3, column 5" is the fifth character of
// the third line, not an offset into a buffer.
package diag

import "fmt"

// Span identifies a range of source text. Both endpoints are 1-indexed and
// inclusive: a single character has StartLine==EndLine and
// StartCol==EndCol.
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

// NewSpan builds a Span from explicit 1-indexed coordinates.
func NewSpan(startLine, startCol, endLine, endCol int) Span {
	return Span{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}
}

// Point builds a one-character span at a single 1-indexed position.
func Point(line, col int) Span {
	return Span{StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	if other.StartLine < s.StartLine || other.EndLine > s.EndLine {
		return false
	}
	if other.StartLine == s.StartLine && other.StartCol < s.StartCol {
		return false
	}
	if other.EndLine == s.EndLine && other.EndCol > s.EndCol {
		return false
	}
	return true
}

// Overlaps reports whether s and other share any source position.
func (s Span) Overlaps(other Span) bool {
	if s.EndLine < other.StartLine || other.EndLine < s.StartLine {
		return false
	}
	if s.EndLine == other.StartLine && s.EndCol < other.StartCol {
		return false
	}
	if other.EndLine == s.StartLine && other.EndCol < s.StartCol {
		return false
	}
	return true
}

// Less gives the canonical diagnostic ordering key: (start_line, start_col).
func (s Span) Less(other Span) bool {
	if s.StartLine != other.StartLine {
		return s.StartLine < other.StartLine
	}
	return s.StartCol < other.StartCol
}

func (s Span) String() string {
	if s.StartLine == s.EndLine && s.StartCol == s.EndCol {
		return fmt.Sprintf("%d:%d", s.StartLine, s.StartCol)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}
