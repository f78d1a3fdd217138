package diag

import "sort"

// Diagnostic is one rule finding: a stable code, a severity, a human
// message, the span it applies to, and an optional suggested Fix.
type Diagnostic struct {
	Code     string `json:"code"`
	Severity Severity `json:"severity"`
	Message  string `json:"message"`
	Span     Span   `json:"span"`
	Fix      *Fix   `json:"fix,omitempty"`

	// Meta marks diagnostics synthesized by the engine itself (e.g.
	// INTERNAL001 from a recovered rule panic) rather than produced by a
	// registered Rule.
	Meta bool `json:"meta,omitempty"`
}

// New builds a Diagnostic with no fix attached.
func New(code string, severity Severity, message string, span Span) Diagnostic {
	return Diagnostic{Code: code, Severity: severity, Message: message, Span: span}
}

// WithFix attaches a suggested fix and returns the diagnostic for chaining.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fix = &fix
	return d
}

// LintResult accumulates diagnostics produced by a single rule or an
// entire lint pass.
type LintResult struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func NewLintResult() LintResult {
	return LintResult{}
}

func (r *LintResult) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

func (r *LintResult) Merge(other LintResult) {
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Sort orders diagnostics by (start_line, start_col, code), the canonical
// ordering every consumer (reporters, fixers, snapshot tests) relies on.
func (r *LintResult) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.Span.Less(b.Span) {
			return true
		}
		if b.Span.Less(a.Span) {
			return false
		}
		return a.Code < b.Code
	})
}
