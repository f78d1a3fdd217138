package idem

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// findRMWithoutF locates a bare `rm` invocation missing -f; rm without -f
// exits non-zero on a missing target, which breaks re-run safety in
// scripts that don't already guard with `|| true` or `-e` checks.
func findRMWithoutF(line string) (start, end int, ok bool) {
	words := strings.Fields(line)
	idx := -1
	for i, w := range words {
		if w == "rm" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, false
	}
	for j := idx + 1; j < len(words); j++ {
		w := words[j]
		if !strings.HasPrefix(w, "-") {
			break
		}
		if !strings.HasPrefix(w, "--") && strings.Contains(w, "f") {
			return 0, 0, false
		}
		if w == "--force" {
			return 0, 0, false
		}
	}
	pos := strings.Index(line, "rm")
	return pos, pos + len("rm"), true
}

type idem003Rule struct{}

func NewIDEM003Rule() rules.Rule { return idem003Rule{} }

func (idem003Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "IDEM003",
		Name:             "rm-without-force",
		Description:      "rm without -f fails when the target is already gone, breaking re-run safety",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryIdempotency,
		EnabledByDefault: true,
	}
}

func (idem003Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if strings.Contains(line, "|| true") || strings.Contains(line, "|| :") {
			continue
		}
		start, end, ok := findRMWithoutF(line)
		if !ok {
			continue
		}
		out = append(out, diag.New(
			"IDEM003", diag.Info,
			"rm without -f fails if the target doesn't exist; re-running this script is not safe",
			diag.NewSpan(i+1, start+1, i+1, end),
		).WithFix(diag.NewFix("rm -f").WithSafety(diag.Safe)))
	}
	return out
}
