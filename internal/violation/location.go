package violation

import "github.com/wharflab/bashrs/internal/diag"

// Position is a single point in a source file. Lines and columns are
// 1-based, matching diag.Span, so FromSpan is a direct field copy plus
// the file name — no coordinate system conversion needed when bridging
// a single-file diag.Diagnostic into this multi-file report model.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column,omitempty"`
}

// Location is a range in a source file plus the file path, since a
// whole-project scan's violations span many files — unlike diag.Span,
// which is always relative to one already-known source. End is
// inclusive, mirroring diag.Span.
type Location struct {
	File  string   `json:"file"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewFileLocation creates a location for file-level issues (no specific line).
func NewFileLocation(file string) Location {
	return Location{File: file, Start: Position{Line: -1, Column: -1}, End: Position{Line: -1, Column: -1}}
}

// NewLineLocation creates a point location for a specific 1-based line.
func NewLineLocation(file string, line int) Location {
	return Location{File: file, Start: Position{Line: line, Column: 1}, End: Position{Line: -1, Column: -1}}
}

// NewRangeLocation creates a location spanning multiple lines/columns (1-based).
func NewRangeLocation(file string, startLine, startCol, endLine, endCol int) Location {
	return Location{File: file, Start: Position{Line: startLine, Column: startCol}, End: Position{Line: endLine, Column: endCol}}
}

// FromSpan converts a diag.Span produced against file into a Location.
func FromSpan(file string, sp diag.Span) Location {
	return Location{
		File:  file,
		Start: Position{Line: sp.StartLine, Column: sp.StartCol},
		End:   Position{Line: sp.EndLine, Column: sp.EndCol},
	}
}

// IsFileLevel returns true if this is a file-level location (no specific line).
func (l Location) IsFileLevel() bool {
	return l.Start.Line < 0
}

// IsPointLocation returns true if this is a single-point location (no range).
func (l Location) IsPointLocation() bool {
	return l.End.Line < 0 || (l.End.Line == l.Start.Line && l.End.Column == l.Start.Column)
}
