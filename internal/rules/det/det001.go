// Package det implements the DETxxx rule family: detection of
// non-deterministic bash constructs (random values, timestamps, process
// identifiers), grounded on the teacher's non_deterministic_vars set in
// bash_transpiler/purification/mod.rs and linter/rules/det002.rs.
package det

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var randomUsage = regexp.MustCompile(`\$(\{)?RANDOM(\})?`)

type det001Rule struct{}

func NewDET001Rule() rules.Rule { return det001Rule{} }

func (det001Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DET001",
		Name:             "random-variable-usage",
		Description:      "$RANDOM produces a different value on every run, breaking determinism",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryDeterminism,
		EnabledByDefault: true,
	}
}

func (det001Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		for _, m := range randomUsage.FindAllStringIndex(line, -1) {
			out = append(out, diag.New(
				"DET001", diag.Error,
				"$RANDOM is non-deterministic - use a fixed seed value, a counter, or pass randomness in as an argument",
				diag.NewSpan(i+1, m[0]+1, i+1, m[1]),
			).WithFix(diag.NewFix("").WithSafety(diag.Unsafe).WithAlternatives(
				"Pass a deterministic value as an argument or environment variable",
				"Use a monotonic counter file instead of $RANDOM",
			)))
		}
	}
	return out
}
