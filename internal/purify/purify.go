// Package purify rewrites bash source in place to remove non-idempotent
// and non-deterministic constructs (spec §4.5), grounded on the
// teacher's bash_transpiler/purification/mod.rs: an Options struct
// toggling which passes run, a Purifier that walks the source and
// records what it changed in a Report, and a conservative default of
// "fix what's safe, warn about the rest" rather than guessing at
// replacements for constructs with no semantics-preserving rewrite
// (spec §4.5 "Non-idempotent side effects" / "Non-deterministic
// constructs").
//
// Unlike the teacher, which purifies a parsed AST (bash_transpiler's
// BashStmt tree), this package operates line-by-line over raw source
// text. internal/bashast has no Redirect node — Command only carries a
// Name and Args — so duplicate-write-target detection and the mkdir/
// ln/rm rewrites this package performs cannot be expressed as AST
// mutations; they are the same regex/field-scanning detectors
// internal/rules/idem and internal/rules/det already use to find these
// patterns at lint time, turned into rewrites instead of diagnostics.
package purify

import (
	"fmt"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
)

// Options mirrors the teacher's PurificationOptions (mod.rs): every
// field defaults to true except TypeCheck/EmitGuards/TypeStrict, which
// opt into the heavier internal/typecheck pass.
type Options struct {
	StrictIdempotency      bool
	RemoveNonDeterministic bool
	TrackSideEffects       bool
	TypeCheck              bool
	EmitGuards             bool
	TypeStrict             bool
}

// DefaultOptions matches the teacher's PurificationOptions::default().
func DefaultOptions() Options {
	return Options{
		StrictIdempotency:      true,
		RemoveNonDeterministic: true,
		TrackSideEffects:       true,
	}
}

// Report mirrors the teacher's PurificationReport (mod.rs): counts of
// what was actually rewritten, plus warnings for constructs this
// package detected but could not safely rewrite on its own (spec §4.5:
// non-deterministic constructs have no automatic semantics-preserving
// replacement - $RANDOM and $(date) need a human to choose a
// replacement source of determinism).
type Report struct {
	IdempotencyFixes    int
	DeterminismFixes    int
	SideEffectsIsolated int
	Warnings            []string
	TypeDiagnostics     []diag.Diagnostic
	Diff                []byte
}

func (r *Report) warn(format string, a ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

// Purify rewrites source according to opts and returns the rewritten
// text alongside a Report of what changed. Purify is idempotent by
// construction (spec §4.5 Testable Property: "purify(purify(x)) ==
// purify(x)"): every rewrite (mkdir -p, ln -sf, rm -f) produces text
// that the same detector no longer matches, so a second pass is a
// no-op other than re-running type checking.
func Purify(source []byte, opts Options) ([]byte, Report, error) {
	lines := strings.Split(string(source), "\n")
	report := Report{}

	if opts.StrictIdempotency {
		purifyIdempotency(lines, &report)
	}
	if opts.RemoveNonDeterministic {
		flagDeterminism(lines, &report)
	}
	if opts.TrackSideEffects {
		flagSideEffects(lines, &report)
	}

	purified := []byte(strings.Join(lines, "\n"))

	if opts.TypeCheck || opts.EmitGuards {
		diags, err := runTypeCheck(purified, opts)
		if err != nil {
			return nil, report, err
		}
		report.TypeDiagnostics = diags
	}

	report.Diff = buildUnifiedDiff(source, purified)
	return purified, report, nil
}
