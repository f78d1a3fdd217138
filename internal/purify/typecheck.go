package purify

import (
	"github.com/wharflab/bashrs/internal/bashparser"
	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/typecheck"
)

// runTypeCheck re-parses the already-purified source and runs
// internal/typecheck over it. Guard snippets are not spliced into the
// source, since that needs to know which statement first uses the
// variable arithmetically; each guard is returned as a TYPE002 Info
// diagnostic carrying the snippet, which the caller can choose to apply,
// rather than mutating purified in place
// (spec §4.5 keeps type checking advisory: it informs the report, it
// does not silently change program behavior the way the idempotency
// rewrites do).
func runTypeCheck(purified []byte, opts Options) ([]diag.Diagnostic, error) {
	file, err := bashparser.Parse(purified)
	if err != nil {
		return nil, err
	}
	checker := typecheck.NewChecker(typecheck.Options{
		Strict:     opts.TypeStrict,
		EmitGuards: opts.EmitGuards,
	})
	diags, guards := checker.Check(file.Statements)
	for _, g := range guards {
		diags = append(diags, diag.New(
			"TYPE002", diag.Info,
			"suggested guard for "+g.VarName+":\n"+g.Snippet,
			diag.Span{},
		))
	}
	return diags, nil
}
