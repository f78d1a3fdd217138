// Package fix implements apply_fixes (spec §4.1): turning a diagnostic's
// proposed Fix into a textual edit, honoring a caller-selected safety
// policy, and rejecting overlapping edits the way the teacher's own
// fix-conflict detection (internal/fix/conflict.go's edit-overlap check)
// guards against colliding BuildKit instruction rewrites.
package fix

import (
	"sort"

	"github.com/wharflab/bashrs/internal/config"
	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/sourcemap"
)

// FixMode controls when a rule's fixes are applied; re-exported from
// config so callers need only import this package.
type FixMode = config.FixMode

const (
	FixModeNever      = config.FixModeNever
	FixModeExplicit   = config.FixModeExplicit
	FixModeAlways     = config.FixModeAlways
	FixModeUnsafeOnly = config.FixModeUnsafeOnly
)

// Policy selects which fixes apply_fixes is allowed to apply.
type Policy struct {
	// MaxSafety is the highest SafetyLevel apply_fixes may apply
	// (inclusive). Diagnostics with a less-safe Fix are skipped.
	MaxSafety diag.SafetyLevel

	// RuleModes overrides the default FixModeAlways behavior per rule
	// code, mirroring config.RulesConfig.Overrides[code].Fix.
	RuleModes map[string]FixMode

	// ExplicitRules lists rule codes to apply despite FixModeExplicit.
	// A rule in FixModeExplicit is otherwise never applied automatically.
	ExplicitRules map[string]bool
}

// AppliedFix records a fix that was written into the output.
type AppliedFix struct {
	RuleCode string
	Span     diag.Span
	Safety   diag.SafetyLevel
}

// SkipReason explains why a candidate fix was not applied.
type SkipReason int

const (
	SkipUnsafe SkipReason = iota
	SkipModeDisabled
	SkipConflict
)

func (r SkipReason) String() string {
	switch r {
	case SkipUnsafe:
		return "unsafe-for-policy"
	case SkipModeDisabled:
		return "mode-disabled"
	case SkipConflict:
		return "span-conflict"
	default:
		return "unknown"
	}
}

// SkippedFix records a fix that was not applied, and why.
type SkippedFix struct {
	RuleCode string
	Span     diag.Span
	Reason   SkipReason
}

// ApplyFixes rewrites source by applying every Diagnostic's Fix that the
// policy allows, in reverse source order (spec §5: "Fix application
// processes diagnostics in reverse source order to keep offsets valid").
// Applied spans never overlap: when two fixes' spans overlap, the one
// that sorts first by (start_line, start_col, code) wins and the other
// is skipped with SkipConflict, matching the canonical diagnostic
// ordering the rest of the engine uses.
func ApplyFixes(source []byte, diagnostics []diag.Diagnostic, policy Policy) (string, []AppliedFix, []SkippedFix) {
	candidates := make([]diag.Diagnostic, len(diagnostics))
	copy(candidates, diagnostics)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Span.Less(candidates[j].Span) {
			return true
		}
		if candidates[j].Span.Less(candidates[i].Span) {
			return false
		}
		return candidates[i].Code < candidates[j].Code
	})

	var applied []AppliedFix
	var skipped []SkippedFix
	var accepted []diag.Diagnostic

	for _, d := range candidates {
		if d.Fix == nil {
			continue
		}

		if reason, ok := policy.rejects(d); ok {
			skipped = append(skipped, SkippedFix{RuleCode: d.Code, Span: d.Span, Reason: reason})
			continue
		}

		conflict := false
		for _, a := range accepted {
			if a.Span.Overlaps(d.Span) {
				conflict = true
				break
			}
		}
		if conflict {
			skipped = append(skipped, SkippedFix{RuleCode: d.Code, Span: d.Span, Reason: SkipConflict})
			continue
		}

		accepted = append(accepted, d)
		applied = append(applied, AppliedFix{RuleCode: d.Code, Span: d.Span, Safety: d.Fix.Safety})
	}

	// Apply in reverse source order so earlier offsets stay valid.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[j].Span.Less(accepted[i].Span)
	})

	sm := sourcemap.New(source)
	out := source
	for _, d := range accepted {
		out = applySpan(sm, out, d.Span, d.Fix.Replacement)
	}

	return string(out), applied, skipped
}

// rejects reports whether policy excludes d's fix, and why.
func (p Policy) rejects(d diag.Diagnostic) (SkipReason, bool) {
	mode := FixModeAlways
	if p.RuleModes != nil {
		if m, ok := p.RuleModes[d.Code]; ok {
			mode = m
		}
	}

	switch mode {
	case FixModeNever:
		return SkipModeDisabled, true
	case FixModeExplicit:
		if !p.ExplicitRules[d.Code] {
			return SkipModeDisabled, true
		}
	case FixModeUnsafeOnly:
		if d.Fix.Safety != diag.Unsafe {
			return SkipModeDisabled, true
		}
	case FixModeAlways:
	}

	if d.Fix.Safety > p.MaxSafety {
		return SkipUnsafe, true
	}
	return 0, false
}

// applySpan replaces the byte range covered by span in source with
// replacement, using sm (built over the original, unmodified source) to
// resolve line/column coordinates to byte offsets.
func applySpan(sm *sourcemap.SourceMap, source []byte, span diag.Span, replacement string) []byte {
	start := sm.LineOffset(span.StartLine-1) + (span.StartCol - 1)
	// EndCol is 1-indexed and inclusive, so the exclusive byte end is
	// one past its 0-based index: lineOffset + (EndCol-1) + 1.
	end := sm.LineOffset(span.EndLine-1) + span.EndCol
	if start < 0 || end < 0 || start > len(source) || end > len(source) || start > end {
		return source
	}

	out := make([]byte, 0, len(source)-(end-start)+len(replacement))
	out = append(out, source[:start]...)
	out = append(out, replacement...)
	out = append(out, source[end:]...)
	return out
}
